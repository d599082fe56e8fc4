package dto

// SolveRequest carries either an inline instance in `.dat` text or the name of a stored one.
type SolveRequest struct {
	Instance        string `json:"instance"`
	Name            string `json:"name"`
	Strategy        string `json:"strategy"`
	ImproveAttempts *int   `json:"improve_attempts"`
	Restarts        *int   `json:"restarts"`
	Seed            *int64 `json:"seed"`
	Strict          *bool  `json:"strict"`
}

type RouteResponse struct {
	Vehicle int      `json:"vehicle"`
	Load    int      `json:"load"`
	Cost    int      `json:"cost"`
	Edges   [][2]int `json:"edges"`
}

type SolveResponse struct {
	Instance   string          `json:"instance"`
	Strategy   string          `json:"strategy"`
	TotalCost  int             `json:"total_cost"`
	Routes     []RouteResponse `json:"routes"`
	Unassigned [][4]int        `json:"unassigned"`
	Warnings   []string        `json:"warnings"`
	Text       string          `json:"text"`
}
