package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator    *gst.ShaderTranslator
	translatorErr error
	once          sync.Once
)

// GetTranslator lazily starts the shared translator.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// stripExtensions removes #extension directives. The checks below only care
// about the declarations, and WebGL2 rejects ES2-only extension names.
func stripExtensions(source string) string {
	lines := strings.Split(source, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#extension") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// CheckFragment translates a fragment shader to ESSL and verifies that every
// named uniform survives translation.
func CheckFragment(source string, uniforms ...string) error {
	t, err := GetTranslator()
	if err != nil {
		return fmt.Errorf("failed to start shader translator: %w", err)
	}
	fs, err := t.TranslateShader(stripExtensions(source), "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatESSL)
	if err != nil {
		return fmt.Errorf("fragment shader translation failed: %w", err)
	}
	return missingUniforms(fs.Variables, uniforms)
}

func missingUniforms(vars map[string]gst.ShaderVariable, uniforms []string) error {
	var missing []string
	for _, name := range uniforms {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("uniforms not active after translation: %s", strings.Join(missing, ", "))
	}
	return nil
}
