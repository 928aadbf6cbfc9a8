package fpvinterface

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dynfpv/extension/internal/dispatcher"
)

// Handle routes one call from the shim and returns the reply string.
// "command|payload" is accepted when no args are passed.
func Handle(command string, args []string) string {
	d := GetDispatcher()
	if d == nil {
		return formatResponse(nil, fmt.Errorf("%s: not initialized", command))
	}

	name, payload, found := strings.Cut(command, "|")
	if len(args) == 0 && found && !d.HasHandler(command) {
		command = name
		args = []string{payload}
	}

	result, err := d.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: time.Now(),
	})
	return formatResponse(result, err)
}

// formatResponse renders ["ok", <json>] or ["error", "<message>"].
func formatResponse(result any, err error) string {
	if err != nil {
		msg, _ := json.Marshal(err.Error())
		return fmt.Sprintf(`["error",%s]`, msg)
	}
	if result == nil {
		return `["ok"]`
	}
	data, err := json.Marshal(result)
	if err != nil {
		msg, _ := json.Marshal(fmt.Sprintf("encode result: %v", err))
		return fmt.Sprintf(`["error",%s]`, msg)
	}
	return fmt.Sprintf(`["ok",%s]`, data)
}

// fit cuts s to at most size-1 bytes so the terminating NUL fits, without
// splitting a UTF-8 sequence.
func fit(s string, size int) string {
	if size <= 0 {
		return ""
	}
	if len(s) < size {
		return s
	}
	cut := size - 1
	for cut > 0 && cut < len(s) && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
