package models

// Session identifies the cadet the current app session acts for. The
// shell constructs one at startup instead of hardcoding a cadet id, so
// every repository call is explicit about whose record book it touches.
type Session struct {
	CadetID string      `json:"cadet_id"`
	Stream  CadetStream `json:"stream"`
}
