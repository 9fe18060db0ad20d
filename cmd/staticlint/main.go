// Staticlint запускает набор статических анализаторов проекта.
//
// Использование:
//
//	staticlint ./...
//
// В набор входят стандартные проходы golang.org/x/tools/go/analysis/passes, все проверки
// класса SA staticcheck, проверка ST1005 stylecheck, go-critic, bodyclose и exitmain,
// который запрещает прямой вызов os.Exit в функции main пакета main.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/nestjam/shortlink/internal/staticlint"
)

func main() {
	multichecker.Main(staticlint.Analyzers()...)
}
