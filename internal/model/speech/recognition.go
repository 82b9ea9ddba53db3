package speech

// RecognitionState is the lifecycle state of a single-shot recognition session.
type RecognitionState string

const (
	RecognitionIdle      RecognitionState = "idle"
	RecognitionListening RecognitionState = "listening"
)
