// Package fuzztests houses Go fuzz harnesses that exercise the conversion
// pipeline's parsing and emission layers (job JSON -> document -> script).
// Its goal is to smoke test robustness and guard against panics on
// arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые скармливают байты
// парсеру документов и сборщику скриптов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/shaderjob, internal/amber.

package fuzztests
