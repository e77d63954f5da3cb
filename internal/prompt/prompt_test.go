package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ideaforge/collaborator/internal/llm"
)

func turns(userCount int) []llm.Message {
	var msgs []llm.Message
	for i := 0; i < userCount; i++ {
		msgs = append(msgs, llm.UserMessage("idea detail"))
		msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: "question back"})
	}
	return msgs
}

func TestSelectPhase(t *testing.T) {
	tests := []struct {
		name      string
		userTurns int
		want      Phase
	}{
		{"no turns", 0, PhaseDiscovery},
		{"one user turn", 1, PhaseDiscovery},
		{"boundary two user turns", 2, PhaseDiscovery},
		{"boundary three user turns", 3, PhaseCollaborative},
		{"long conversation", 10, PhaseCollaborative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectPhase(turns(tt.userTurns)))
		})
	}
}

func TestSelectPhase_IgnoresNonUserRoles(t *testing.T) {
	// Assistant and system turns never advance the phase.
	msgs := []llm.Message{
		llm.SystemMessage("s"),
		{Role: llm.RoleAssistant, Content: "a"},
		{Role: llm.RoleAssistant, Content: "b"},
		{Role: llm.RoleAssistant, Content: "c"},
		llm.UserMessage("I want a todo app"),
	}
	assert.Equal(t, PhaseDiscovery, SelectPhase(msgs))
}

func TestSelectPhase_Deterministic(t *testing.T) {
	msgs := turns(3)
	first := SelectPhase(msgs)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SelectPhase(msgs))
	}
}

func TestSystemPrompt(t *testing.T) {
	assert.Equal(t, DiscoveryPrompt, SystemPrompt(PhaseDiscovery))
	assert.Equal(t, CollaborativePrompt, SystemPrompt(PhaseCollaborative))
}

func TestPromptContent(t *testing.T) {
	// The discovery prompt must forbid early PRDs and demand question categories.
	assert.Contains(t, DiscoveryPrompt, "NEVER generate a PRD")
	assert.Contains(t, DiscoveryPrompt, "5-7 questions")

	// The collaborative prompt must keep PRD creation behind a question.
	assert.Contains(t, CollaborativePrompt, "NEVER jump straight to a complete PRD")

	// The format instruction pins every required top-level field.
	for _, field := range []string{"title", "description", "features", "technologies", "architecture", "implementationPlan"} {
		assert.Contains(t, PRDFormatInstruction, `"`+field+`"`)
	}
}
