// Package processor drives annotation over files and directories: it parses
// a source file, annotates every component and splices the re-rendered
// markup back over the original byte ranges, leaving all surrounding code
// untouched.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"

	"github.com/viant/jsxmark/annotator"
	"github.com/viant/jsxmark/markup"
	"github.com/viant/jsxmark/parser"
)

// Processor rewrites JSX/TSX sources with traceability annotations
type Processor struct {
	config *annotator.Config
	parser *parser.Parser
	fs     afs.Service
}

// New creates a Processor. The config's Filename field is set per processed
// file; a nil config annotates with defaults.
func New(config *annotator.Config) *Processor {
	if config == nil {
		config = annotator.DefaultConfig()
	}
	return &Processor{
		config: config,
		parser: parser.New(),
		fs:     afs.New(),
	}
}

type edit struct {
	start int
	end   int
	text  string
}

// ProcessSource annotates all components found in src, returning the
// rewritten source. Skip-listed filenames and sources with no components
// come back byte-identical.
func (p *Processor) ProcessSource(src []byte, filename string) ([]byte, error) {
	config := p.fileConfig(filename)
	if config.Filename == "" || config.Skipped() {
		return src, nil
	}
	aFile, err := p.parser.ParseSource(src, filename)
	if err != nil {
		return nil, err
	}
	if len(aFile.Components) == 0 {
		return src, nil
	}

	annotator.New(config).AnnotateFile(aFile)

	var edits []edit
	for _, component := range aFile.Components {
		for _, root := range component.Roots {
			edits = append(edits, edit{
				start: root.StartByte,
				end:   root.EndByte,
				text:  markup.Render(root.Node),
			})
		}
	}
	// apply bottom-up so earlier offsets stay valid
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	result := src
	for _, e := range edits {
		if e.start < 0 || e.end > len(result) || e.start > e.end {
			continue
		}
		var buffer bytes.Buffer
		buffer.Write(result[:e.start])
		buffer.WriteString(e.text)
		buffer.Write(result[e.end:])
		result = buffer.Bytes()
	}
	return result, nil
}

// ProcessFile annotates one file in place
func (p *Processor) ProcessFile(ctx context.Context, location string) error {
	src, err := p.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", location, err)
	}
	result, err := p.ProcessSource(src, location)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", location, err)
	}
	if bytes.Equal(src, result) {
		return nil
	}
	if err := p.fs.Upload(ctx, location, 0644, bytes.NewReader(result)); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}

// ProcessPackage annotates every .jsx/.tsx file under a directory
func (p *Processor) ProcessPackage(ctx context.Context, packagePath string) error {
	absPath, err := filepath.Abs(packagePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	return filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".jsx" && ext != ".tsx" {
			return nil
		}
		if strings.Contains(filepath.Base(path), ".test.") {
			return nil
		}
		if err := p.ProcessFile(ctx, path); err != nil {
			return fmt.Errorf("error processing %s: %w", path, err)
		}
		return nil
	})
}

// fileConfig derives the per-file configuration from the shared one
func (p *Processor) fileConfig(filename string) *annotator.Config {
	return &annotator.Config{
		Filename:  filename,
		SkipFiles: p.config.SkipFiles,
		Bridge:    p.config.Bridge,
	}
}
