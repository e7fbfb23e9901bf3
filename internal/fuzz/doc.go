// Package fuzztests houses Go fuzz harnesses for the scanning pipeline
// (source -> layout -> scan -> render). Its goal is to smoke test
// robustness and guard against panics, hangs or broken span invariants on
// arbitrary inputs.
//
// Назначение: прогонять произвольные байты через Scan и ScanAndRender и
// проверять инварианты спанов и остатка.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/parser, internal/stubgen,
// internal/testkit.
package fuzztests
