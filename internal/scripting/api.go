package scripting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"github.com/sadopc/endecoder/internal/core/codec"
)

// ScriptAPI provides the browser globals a Base64 snippet relies on:
// console, btoa, atob, TextEncoder and TextDecoder.
type ScriptAPI struct {
	logs []string
}

func newScriptAPI() *ScriptAPI {
	return &ScriptAPI{}
}

// textCodecShim defines TextEncoder/TextDecoder over the Go UTF-8 helpers.
const textCodecShim = `
class TextEncoder {
	get encoding() { return "utf-8"; }
	encode(s) { return new Uint8Array(__utf8encode(s === undefined ? "" : String(s))); }
}
class TextDecoder {
	get encoding() { return "utf-8"; }
	decode(bytes) { return bytes === undefined ? "" : __utf8decode(bytes); }
}
`

func (a *ScriptAPI) registerOnRuntime(vm *goja.Runtime) error {
	console := vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		a.logs = append(a.logs, strings.Join(parts, " "))
		return goja.Undefined()
	}
	for _, name := range []string{"log", "info", "warn", "error"} {
		if err := console.Set(name, logFn); err != nil {
			return err
		}
	}
	vm.Set("console", console)

	// btoa takes a binary string: every code unit must fit in a byte.
	vm.Set("btoa", func(call goja.FunctionCall) goja.Value {
		s := call.Argument(0).String()
		buf := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xFF {
				panic(vm.NewTypeError("btoa: string contains characters outside of the Latin1 range"))
			}
			buf = append(buf, byte(r))
		}
		return vm.ToValue(codec.EncodeBytes(buf))
	})
	vm.Set("atob", func(call goja.FunctionCall) goja.Value {
		data, err := codec.DecodeBytes(call.Argument(0).String())
		if err != nil {
			panic(vm.NewGoError(fmt.Errorf("atob: %w", err)))
		}
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return vm.ToValue(string(runes))
	})

	vm.Set("__utf8encode", func(call goja.FunctionCall) goja.Value {
		b := []byte(call.Argument(0).String())
		items := make([]any, len(b))
		for i, c := range b {
			items[i] = int64(c)
		}
		return vm.NewArray(items...)
	})
	vm.Set("__utf8decode", func(call goja.FunctionCall) goja.Value {
		obj := call.Argument(0).ToObject(vm)
		n := obj.Get("length").ToInteger()
		b := make([]byte, n)
		for i := int64(0); i < n; i++ {
			b[i] = byte(obj.Get(strconv.FormatInt(i, 10)).ToInteger())
		}
		return vm.ToValue(strings.ToValidUTF8(string(b), "\uFFFD"))
	})

	_, err := vm.RunString(textCodecShim)
	return err
}
