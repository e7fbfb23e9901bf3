package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Сканер
	ScnInfo              Code = 1000
	ScnResidue           Code = 1001
	ScnMalformedDecl     Code = 1002
	ScnRawBufferGuess    Code = 1003
	ScnUnterminatedBlock Code = 1004

	// Рендер
	RndInfo        Code = 2000
	RndEmptyOutput Code = 2001

	// Проверка результата
	VfyInfo          Code = 3000
	VfySyntaxError   Code = 3001
	VfyRoundTrip     Code = 3002
	VfyUnavailable   Code = 3003
	VfyStaleStubFile Code = 3004
	VfyCheckFailed   Code = 3005

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// Конфигурация
	CfgInvalid     Code = 5001
	CfgTypemap     Code = 5002
	CfgUnknownKeys Code = 5003

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	ScnInfo:              "Scan information",
	ScnResidue:           "Unparsed text",
	ScnMalformedDecl:     "Malformed declaration",
	ScnRawBufferGuess:    "Raw-buffer type inferred",
	ScnUnterminatedBlock: "Unterminated bracket or string",
	RndInfo:              "Render information",
	RndEmptyOutput:       "Nothing to render",
	VfyInfo:              "Verification information",
	VfySyntaxError:       "Generated stub is not valid Python",
	VfyRoundTrip:         "Generated stub does not scan back to the same declarations",
	VfyUnavailable:       "Stub verification unavailable",
	VfyStaleStubFile:     "Stub file is out of date",
	VfyCheckFailed:       "Stub verification failed to run",
	IOLoadFileError:      "I/O load file error",
	IOWriteFileError:     "I/O write file error",
	IOCacheError:         "Stub cache error",
	CfgInvalid:           "Invalid configuration",
	CfgTypemap:           "Invalid type map",
	CfgUnknownKeys:       "Unknown configuration keys",
	ObsInfo:              "Observability information",
	ObsTimings:           "Pipeline timings",
}

// ID returns the stable short form such as "SCN1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RND%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("VFY%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
