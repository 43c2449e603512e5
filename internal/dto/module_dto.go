package dto

import "github.com/mentora-labs/mentora-api/internal/models"

// TopicResponse serializes a topic within a module.
type TopicResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ModuleID string `json:"module_id"`
}

// ModuleResponse serializes a course module with its topics.
type ModuleResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Overview string          `json:"overview"`
	Topics   []TopicResponse `json:"topics"`
}

// NewModuleResponse converts a module model into a DTO.
func NewModuleResponse(model models.Module) ModuleResponse {
	topics := make([]TopicResponse, 0, len(model.Topics))
	for _, topic := range model.Topics {
		topics = append(topics, TopicResponse{ID: topic.ID, Name: topic.Name, ModuleID: topic.ModuleID})
	}

	return ModuleResponse{
		ID:       model.ID,
		Name:     model.Name,
		Overview: model.Overview,
		Topics:   topics,
	}
}

// NewModuleResponseSlice converts module models into DTOs.
func NewModuleResponseSlice(modules []models.Module) []ModuleResponse {
	responses := make([]ModuleResponse, 0, len(modules))
	for _, module := range modules {
		responses = append(responses, NewModuleResponse(module))
	}

	return responses
}
