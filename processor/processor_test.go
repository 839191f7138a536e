package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/txtar"

	"github.com/viant/jsxmark/annotator"
)

func TestProcessor_ProcessSource(t *testing.T) {
	source := `import React from 'react';

const GREETING = 'hello';

function App() {
  return (
    <div className="app">
      <h1>{GREETING}</h1>
    </div>
  );
}

export default App;`

	result, err := New(nil).ProcessSource([]byte(source), "App.jsx")
	if !assert.NoError(t, err) {
		return
	}
	rewritten := string(result)

	assert.Contains(t, rewritten, `data-component-file="App.jsx"`)
	assert.Contains(t, rewritten, `data-component-name="App"`)
	assert.Contains(t, rewritten, `data-rendered-by="App.jsx"`)

	// everything outside the returned markup stays byte-identical
	assert.True(t, strings.HasPrefix(rewritten, "import React from 'react';\n\nconst GREETING = 'hello';\n"))
	assert.True(t, strings.HasSuffix(rewritten, "\nexport default App;"))
	assert.Contains(t, rewritten, "{GREETING}")
}

func TestProcessor_Idempotent(t *testing.T) {
	source := `const faqs = [
  { question: 'What is it?', answer: 'A tool.' },
  { question: 'Why use it?', answer: 'Because.' },
];

function Faq() {
  return (
    <section>
      {faqs.map((faq, index) => (
        <div key={index}>
          <h3>{faq.question}</h3>
          <p>{faq.answer}</p>
        </div>
      ))}
    </section>
  );
}`
	processor := New(nil)
	once, err := processor.ProcessSource([]byte(source), "Faq.jsx")
	if !assert.NoError(t, err) {
		return
	}
	assert.NotEqual(t, source, string(once))

	twice, err := processor.ProcessSource(once, "Faq.jsx")
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, string(once), string(twice))
}

func TestProcessor_SkippedAndInert(t *testing.T) {
	tests := []struct {
		name     string
		config   *annotator.Config
		source   string
		filename string
	}{
		{
			name:     "skip-listed file",
			config:   &annotator.Config{SkipFiles: []string{"vendor"}},
			source:   "function App() {\n  return <div></div>;\n}",
			filename: "src/vendor/App.jsx",
		},
		{
			name:     "no components",
			source:   "export const answer = 42;\n",
			filename: "answer.jsx",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := New(tc.config).ProcessSource([]byte(tc.source), tc.filename)
			if assert.NoError(t, err) {
				assert.Equal(t, tc.source, string(result))
			}
		})
	}
}

func TestProcessor_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "Hero.jsx")
	source := "function Hero() {\n  return <div className=\"hero\"></div>;\n}\n"
	if !assert.NoError(t, os.WriteFile(location, []byte(source), 0644)) {
		return
	}

	err := New(nil).ProcessFile(context.Background(), location)
	if !assert.NoError(t, err) {
		return
	}
	rewritten, err := os.ReadFile(location)
	if !assert.NoError(t, err) {
		return
	}
	assert.Contains(t, string(rewritten), `data-component-name="Hero"`)
	assert.Contains(t, string(rewritten), "data-component-file=")
}

func TestProcessor_ProcessPackage(t *testing.T) {
	archive, err := txtar.ParseFile(filepath.Join("testdata", "project.txtar"))
	if !assert.NoError(t, err) {
		return
	}
	dir := t.TempDir()
	originals := map[string]string{}
	for _, file := range archive.Files {
		path := filepath.Join(dir, filepath.FromSlash(file.Name))
		if !assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755)) {
			return
		}
		if !assert.NoError(t, os.WriteFile(path, file.Data, 0644)) {
			return
		}
		originals[file.Name] = string(file.Data)
	}

	err = New(nil).ProcessPackage(context.Background(), dir)
	if !assert.NoError(t, err) {
		return
	}

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		assert.NoError(t, err)
		return string(data)
	}

	app := read("src/App.jsx")
	assert.Contains(t, app, `data-component-name="App"`)
	assert.Contains(t, app, "src/App.jsx\"", "the recorded filename is the processed path")
	assert.True(t, strings.HasSuffix(app, "export default App;\n"))

	button := read("src/components/Button.jsx")
	assert.Contains(t, button, `data-component-name="Button"`)

	assert.Equal(t, originals["src/App.test.jsx"], read("src/App.test.jsx"),
		"test files are excluded from the walk")
	assert.Equal(t, originals["src/util.js"], read("src/util.js"),
		"only .jsx/.tsx files are rewritten")
}
