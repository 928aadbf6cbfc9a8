package fpvinterface

import (
	"os"
	"unsafe"
)

/*
#cgo windows LDFLAGS: -lpsapi
#cgo linux LDFLAGS: -ldl

#if defined(__linux__) && !defined(_GNU_SOURCE)
#define _GNU_SOURCE
#endif
#include <stdlib.h>
#include <string.h>

#if defined(_WIN32)
#define WIN32_LEAN_AND_MEAN
#include <windows.h>

// The buffer doubles from MAX_PATH up to the 32K long-path limit.
static char* dfpv_module_path(void) {
    HMODULE self = NULL;
    DWORD flags = GET_MODULE_HANDLE_EX_FLAG_FROM_ADDRESS | GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT;
    if (!GetModuleHandleExA(flags, (LPCSTR)dfpv_module_path, &self)) {
        return NULL;
    }
    for (DWORD size = MAX_PATH; size <= 32768; size *= 2) {
        char* buf = (char*)malloc(size);
        if (buf == NULL) {
            return NULL;
        }
        DWORD n = GetModuleFileNameA(self, buf, size);
        if (n > 0 && n < size) {
            return buf;
        }
        free(buf);
        if (n == 0) {
            return NULL;
        }
    }
    return NULL;
}

#elif defined(__linux__) || defined(__APPLE__)
#include <dlfcn.h>

static char* dfpv_module_path(void) {
    Dl_info info;
    if (dladdr((void*)dfpv_module_path, &info) == 0 || info.dli_fname == NULL) {
        return NULL;
    }
    return strdup(info.dli_fname);
}

#else
static char* dfpv_module_path(void) { return NULL; }
#endif
*/
import "C"

// GetModulePath returns the absolute path of the loaded module. When the
// loader cannot tell, it falls back to the running executable.
func GetModulePath() string {
	if cpath := C.dfpv_module_path(); cpath != nil {
		defer C.free(unsafe.Pointer(cpath))
		if p := C.GoString(cpath); p != "" {
			return p
		}
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return exe
}
