package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateData общие данные для всех шаблонов писем
type TemplateData struct {
	UserName   string
	ActionURL  string
	ActionText string
	Message    string
}

// TemplateManager хранит скомпилированные html-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с встроенными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	"verification": `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hello, {{.UserName}}!</h2>
  <p>Thank you for registering with MUNext Careers. Please confirm your email address to activate your account.</p>
  <p><a href="{{.ActionURL}}" style="background-color:#1a73e8;color:#fff;padding:10px 20px;text-decoration:none;border-radius:4px;">{{.ActionText}}</a></p>
  <p>If the button does not work, copy this link into your browser:<br>{{.ActionURL}}</p>
  <p>If you did not create an account, you can safely ignore this message.</p>
</body>
</html>`,

	"welcome": `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome, {{.UserName}}!</h2>
  <p>Your account has been verified. You can now sign in and start using MUNext Careers.</p>
</body>
</html>`,
}
