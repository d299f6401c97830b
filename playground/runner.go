package playground

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	UnsupportedLanguageErr = errors.New("language not supported for execution")
	ToolchainMissingErr    = errors.New("required compiler/interpreter not installed")
)

// File is a source file submitted for execution.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Result is the outcome of a single run. Error carries compiler or runtime
// output; it is data, not a Go error.
type Result struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error"`
}

// Runner executes submitted snippets in a throwaway temp directory, bounded
// by a per-run timeout. Each run is independent; the Runner holds no state
// between calls.
type Runner struct {
	timeout time.Duration
}

func NewRunner(timeout time.Duration) *Runner {
	return &Runner{timeout: timeout}
}

var javaClassPattern = regexp.MustCompile(`class\s+\w+`)

// Run executes the first submitted file for the given language. It returns an
// error only for invalid requests (unsupported language, no files); execution
// failures are reported inside the Result.
func (r *Runner) Run(ctx context.Context, language string, files []File) (*Result, error) {
	if len(files) == 0 {
		return nil, errors.New("[Runner.Run] no files to execute")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tempDir, err := os.MkdirTemp("", "playground-")
	if err != nil {
		return nil, errors.Wrap(err, "[Runner.Run] create temp dir")
	}
	defer os.RemoveAll(tempDir)

	content := files[0].Content
	var output string
	var runErr error

	switch strings.ToLower(language) {
	case "python":
		runErr = writeSource(tempDir, "script.py", content)
		if runErr == nil {
			output, runErr = runFirst(ctx, tempDir,
				[]string{"python3", filepath.Join(tempDir, "script.py")},
				[]string{"python", filepath.Join(tempDir, "script.py")})
		}
	case "javascript":
		runErr = writeSource(tempDir, "script.js", content)
		if runErr == nil {
			output, runErr = runFirst(ctx, tempDir,
				[]string{"node", filepath.Join(tempDir, "script.js")})
		}
	case "php":
		runErr = writeSource(tempDir, "script.php", content)
		if runErr == nil {
			output, runErr = runFirst(ctx, tempDir,
				[]string{"php", filepath.Join(tempDir, "script.php")})
		}
	case "java":
		// The public class has to be called Main for a fixed file name.
		content = javaClassPattern.ReplaceAllString(content, "class Main")
		runErr = writeSource(tempDir, "Main.java", content)
		if runErr == nil {
			_, runErr = runFirst(ctx, tempDir, []string{"javac", filepath.Join(tempDir, "Main.java")})
		}
		if runErr == nil {
			output, runErr = runFirst(ctx, tempDir, []string{"java", "-cp", tempDir, "Main"})
		}
	case "cpp":
		exe := filepath.Join(tempDir, "program")
		runErr = writeSource(tempDir, "program.cpp", content)
		if runErr == nil {
			_, runErr = runFirst(ctx, tempDir,
				[]string{"g++", "-o", exe, filepath.Join(tempDir, "program.cpp")},
				[]string{"clang++", "-o", exe, filepath.Join(tempDir, "program.cpp")})
		}
		if runErr == nil {
			output, runErr = runFirst(ctx, tempDir, []string{exe})
		}
	case "csharp":
		exe := filepath.Join(tempDir, "Program.exe")
		runErr = writeSource(tempDir, "Program.cs", content)
		if runErr == nil {
			_, runErr = runFirst(ctx, tempDir,
				[]string{"csc", "-out:" + exe, filepath.Join(tempDir, "Program.cs")},
				[]string{"mcs", "-out:" + exe, filepath.Join(tempDir, "Program.cs")})
		}
		if runErr == nil {
			output, runErr = runFirst(ctx, tempDir, []string{exe})
		}
	case "rust":
		exe := filepath.Join(tempDir, "main")
		runErr = writeSource(tempDir, "main.rs", content)
		if runErr == nil {
			_, runErr = runFirst(ctx, tempDir, []string{"rustc", "-o", exe, filepath.Join(tempDir, "main.rs")})
		}
		if runErr == nil {
			output, runErr = runFirst(ctx, tempDir, []string{exe})
		}
	default:
		return nil, UnsupportedLanguageErr
	}

	result := &Result{Output: strings.TrimSpace(output)}
	if runErr != nil {
		if errors.Is(runErr, ToolchainMissingErr) {
			result.Error = ToolchainMissingErr.Error() + " for " + language
		} else {
			result.Error = strings.TrimSpace(runErr.Error())
		}
		return result, nil
	}

	result.Success = true
	if result.Output == "" {
		result.Output = "Program executed successfully with no output"
	}
	return result, nil
}

func writeSource(dir, name, content string) error {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		return errors.Wrap(err, "write source file")
	}
	return nil
}

// runFirst tries each candidate command line in order, falling through to the
// next when the binary is not on PATH. Stderr from a failed run is surfaced
// as the error.
func runFirst(ctx context.Context, dir string, candidates ...[]string) (string, error) {
	missing := false
	for _, argv := range candidates {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Dir = dir

		out, err := cmd.Output()
		if err == nil {
			return string(out), nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			missing = true
			continue
		}
		if ctx.Err() != nil {
			return "", errors.New("execution timed out")
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", errors.New(strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	if missing {
		return "", ToolchainMissingErr
	}
	return "", errors.New("no command could be executed")
}
