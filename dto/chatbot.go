package dto

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Complete  bool   `json:"complete"`
}

// ApplicantSession is the dialogue state kept between chat turns.
type ApplicantSession struct {
	ID      string           `json:"id"`
	Step    int              `json:"step"`
	Profile ApplicantProfile `json:"profile"`
}
