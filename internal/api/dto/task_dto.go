package dto

type ParamDTO struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Default  interface{} `json:"default"`
	Required bool        `json:"required"`
}

type TaskDTO struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Params      []ParamDTO `json:"params"`
}

type ListTasksResponse struct {
	Tasks []TaskDTO `json:"tasks"`
}

type InvokeTaskRequest struct {
	Args   []string          `json:"args"`
	Kwargs map[string]string `json:"kwargs"`
}

type InvokeTaskResponse struct {
	Task         string `json:"task"`
	SubmissionID string `json:"submission_id"`
}

type ListSubmissionsRequest struct {
	TaskName string `form:"task"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type SubmissionDTO struct {
	SubmissionID string `json:"submission_id"`
	TaskName     string `json:"task_name"`
	Args         string `json:"args"`
	Kwargs       string `json:"kwargs"`
	SubmittedAt  string `json:"submitted_at"`
}

type ListSubmissionsResponse struct {
	Submissions []SubmissionDTO `json:"submissions"`
	NextCursor  string          `json:"next_cursor,omitempty"`
}
