package dto

// EvaluationPageView is everything the evaluation view renders.
type EvaluationPageView struct {
	Solution    SolutionResponse          `json:"solution"`
	Status      string                    `json:"status"`
	Evaluations []EvaluationResponse      `json:"evaluations"`
	Summary     EvaluationSummaryResponse `json:"summary"`
}

// EvaluationListView is returned after a submission refreshes the list.
type EvaluationListView struct {
	Evaluations []EvaluationResponse      `json:"evaluations"`
	Summary     EvaluationSummaryResponse `json:"summary"`
}

// HistoryPageView is everything the history view renders.
type HistoryPageView struct {
	Solution SolutionResponse `json:"solution"`
	Reports  []ReportResponse `json:"reports"`
}

// MenuAction is one entry of a solution's context menu.
type MenuAction struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Method string `json:"method"`
	Href   string `json:"href"`
}

// MenuEntry pairs a solution card with its context menu.
type MenuEntry struct {
	Solution SolutionResponse `json:"solution"`
	Actions  []MenuAction     `json:"actions"`
}

// MenuView is the landing list of solutions.
type MenuView struct {
	Solutions []MenuEntry `json:"solutions"`
}
