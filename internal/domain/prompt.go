package domain

import "strings"

// BuildPrompt склеивает историю в плоский текст: строки "role: text" и в конце новая реплика пользователя.
// Длину не ограничиваем.
func BuildPrompt(history []Turn, userText string) string {
	lines := make([]string, 0, len(history)+1)
	for _, t := range history {
		lines = append(lines, string(t.Role)+": "+t.Text)
	}
	lines = append(lines, string(RoleUser)+": "+userText)
	return strings.Join(lines, "\n")
}
