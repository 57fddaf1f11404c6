package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedBlock  Code = 1003
	LexBadNumber          Code = 1004

	// Парсер и схема
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpectReference Code = 2002
	SynExpectIdent     Code = 2003
	SynExpectExpr      Code = 2004
	SchemaUnknownKind  Code = 2100
	SchemaBadDirective Code = 2101

	// Резолвинг зависимостей
	ResolveInfo         Code = 3000
	ResolveMissing      Code = 3001
	ResolveCycle        Code = 3002
	ResolveMaxDepth     Code = 3003
	ResolveLoadFailed   Code = 3004
	ResolveParseFailed  Code = 3005

	// Слияние
	MergeInfo                  Code = 4000
	MergeRootNotBound          Code = 4001
	MergeUnresolvedOccurrence  Code = 4002
	MergeDependencyMissing     Code = 4003
	MergeDependencyUnprocessed Code = 4004
	MergeMappingDegraded       Code = 4005
	MergeEditFailed            Code = 4006
)

// String returns the stable textual form, e.g. "GRF4002".
func (c Code) String() string {
	return fmt.Sprintf("GRF%04d", uint16(c))
}
