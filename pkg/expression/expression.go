package expression

import (
	"fmt"
	"path/filepath"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/finddups/finddups/pkg/fileinfo"
)

// Env is the evaluation environment exposed to filter expressions.
type Env struct {
	Name string
	Path string
	Size int64
}

// CompiledExpression pairs a compiled program with its source text so match
// reasons can be logged.
type CompiledExpression struct {
	Text    string
	Program *vm.Program
}

// Compile compiles the given filter expressions against the file environment.
// Every expression must evaluate to a boolean.
func Compile(expressions []string) ([]CompiledExpression, error) {
	compiled := make([]CompiledExpression, 0, len(expressions))

	for _, text := range expressions {
		program, err := expr.Compile(text, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile expression %q: %w", text, err)
		}

		compiled = append(compiled, CompiledExpression{Text: text, Program: program})
	}

	return compiled, nil
}

func envForFile(f fileinfo.FileRecord) Env {
	return Env{
		Name: filepath.Base(f.Path),
		Path: f.Path,
		Size: f.Size,
	}
}

// CheckFileAllMatch reports whether the file matches every expression.
func CheckFileAllMatch(f fileinfo.FileRecord, expressions []CompiledExpression) (bool, error) {
	match, _, err := CheckFileAllMatchWithReason(f, expressions)
	return match, err
}

// CheckFileAllMatchWithReason reports whether the file matches every
// expression, returning the text of the expressions that failed.
func CheckFileAllMatchWithReason(f fileinfo.FileRecord, expressions []CompiledExpression) (bool, []string, error) {
	env := envForFile(f)
	var failedExpressions []string

	for _, expression := range expressions {
		result, err := expr.Run(expression.Program, env)
		if err != nil {
			return false, nil, fmt.Errorf("check expression: %w", err)
		}

		expResult, ok := result.(bool)
		if !ok {
			return false, nil, fmt.Errorf("expression %q did not evaluate to a boolean", expression.Text)
		}

		if !expResult {
			failedExpressions = append(failedExpressions, expression.Text)
		}
	}

	if len(failedExpressions) > 0 {
		return false, failedExpressions, nil
	}

	return true, nil, nil
}
