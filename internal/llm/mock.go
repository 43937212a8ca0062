package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error
	Calls    []Prompt
}

func (m *MockClient) Generate(_ context.Context, prompt Prompt) (string, error) {
	m.Calls = append(m.Calls, prompt)
	return m.Response, m.Err
}
