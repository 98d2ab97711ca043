package importer

import (
	"errors"
	"fmt"
)

// ErrFileNotFound файл с выгрузкой показов отсутствует
var ErrFileNotFound = errors.New("Файл данных не найден")

// MissingColumnError в выгрузке нет обязательной колонки
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("Отсутствует колонка: %s", e.Column)
}

// DateParseError дата показа не в формате DD.MM.YYYY.
// Ошибка одной строки делает недействительной всю выгрузку.
type DateParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("Некорректная дата в строке %d: %q", e.Row, e.Value)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
