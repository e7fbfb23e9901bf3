// Package format renders scanned declarations as Python stub text.
//
// Назначение: превращает дерево объявлений в текст .pyi.
// Не делает: разбор исходника, IO, проверку синтаксиса результата.
// Зависимости: internal/ast, internal/typemap.
package format
