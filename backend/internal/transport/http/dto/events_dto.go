package dto

type EventBatchItemRequest struct {
	Name  string                 `json:"name"`
	TS    int64                  `json:"ts"`
	Props map[string]interface{} `json:"props,omitempty"`
}

type EventsBatchRequest struct {
	Events []EventBatchItemRequest `json:"events"`
}

type EventsBatchResponse struct {
	OK       bool `json:"ok"`
	Accepted int  `json:"accepted"`
}
