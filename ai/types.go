package ai

import "errors"

var (
	// ErrEmptyResponse indicates the generation service returned no choices.
	ErrEmptyResponse = errors.New("generation service returned no choices")

	// ErrEmbeddingShape indicates the embedding service returned the wrong
	// number of vectors or vectors of the wrong length.
	ErrEmbeddingShape = errors.New("unexpected embedding shape")
)

// Role tags a chat message.
type Role int

const (
	// RoleSystem carries instructions to the model.
	RoleSystem Role = iota + 1
	// RoleHuman carries user content.
	RoleHuman
)

// Message is one entry of a chat prompt.
type Message struct {
	Role    Role
	Content string
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// HumanMessage builds a human-role message.
func HumanMessage(content string) Message {
	return Message{Role: RoleHuman, Content: content}
}
