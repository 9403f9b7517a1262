package devenv

// VplanTestConfig is read from dev/.state/vplan_config.json5 by the tests
// that run against the real timetable site.
type VplanTestConfig struct {
	PageUrl  string `json:"page_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Class    string `json:"class"`
}
