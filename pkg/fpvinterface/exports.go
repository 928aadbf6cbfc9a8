package fpvinterface

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// called by the shim once after loading the module
//
//export FpvVersion
func FpvVersion(output *C.char, outputsize C.size_t) {
	reply(Version(), output, outputsize)
}

// called by the shim with a bare command, optionally "command|payload"
//
//export FpvCommand
func FpvCommand(output *C.char, outputsize C.size_t, input *C.char) {
	defer recoverReply(output, outputsize)
	reply(Handle(C.GoString(input), nil), output, outputsize)
}

// called by the shim with a command and a string array
//
//export FpvCommandArgs
func FpvCommandArgs(output *C.char, outputsize C.size_t, input *C.char, argv **C.char, argc C.int) {
	defer recoverReply(output, outputsize)
	reply(Handle(C.GoString(input), parseArgsFromC(argv, argc)), output, outputsize)
}

func recoverReply(output *C.char, outputsize C.size_t) {
	if r := recover(); r != nil {
		reply(formatResponse(nil, fmt.Errorf("panic: %v", r)), output, outputsize)
	}
}

// parseArgsFromC converts C argv array to Go string slice
func parseArgsFromC(argv **C.char, argc C.int) []string {
	if argc <= 0 || argv == nil {
		return nil
	}
	ptrs := unsafe.Slice(argv, int(argc))
	data := make([]string, len(ptrs))
	for i, p := range ptrs {
		data[i] = C.GoString(p)
	}
	return data
}

// reply copies response into the caller's buffer, always NUL-terminated
func reply(response string, output *C.char, outputsize C.size_t) {
	if output == nil || outputsize == 0 {
		return
	}
	response = fit(response, int(outputsize))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(output)), int(outputsize))
	n := copy(buf, response)
	buf[n] = 0
}
