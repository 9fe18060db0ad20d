package staticlint

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const usingExitInMainWarn = "using exit in main"

// ExitMainAnalyzer сообщает о прямом вызове os.Exit в функции main пакета main.
var ExitMainAnalyzer = &analysis.Analyzer{
	Name:     "exitmain",
	Doc:      "check using exit in main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	const mainName = "main"

	if pass.Pkg.Name() != mainName {
		return nil, nil
	}

	generated := make(map[*ast.File]bool)
	for _, file := range pass.Files {
		generated[file] = ast.IsGenerated(file)
	}

	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, nil
	}

	insp.WithStack([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return false
		}
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Name.Name != mainName || fn.Body == nil {
			return false
		}
		if file, ok := stack[0].(*ast.File); ok && generated[file] {
			return false
		}

		ast.Inspect(fn.Body, func(node ast.Node) bool {
			switch x := node.(type) {
			case *ast.FuncLit:
				return false
			case *ast.CallExpr:
				if isOSExit(pass.TypesInfo, x) {
					pass.Reportf(x.Pos(), usingExitInMainWarn)
				}
			}
			return true
		})
		return false
	})

	return nil, nil
}

func isOSExit(info *types.Info, call *ast.CallExpr) bool {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == "os" && fn.Name() == "Exit"
}
