//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/dose2gmsh/api"
)

func bytesArg(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func toUint8Array(out []byte) js.Value {
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

// convertDose(bytes, format) -> Uint8Array | error string
func convertDose(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing 3ddose bytes")
	}
	format := "msh2"
	if len(args) > 1 && args[1].Type() == js.TypeString {
		format = args[1].String()
	}
	out, err := api.Convert(bytesArg(args[0]), format)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func cbor2dose(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing cbor bytes")
	}
	out, err := api.ConvertTo3DDose(bytesArg(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func doseInfo(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing 3ddose bytes")
	}
	out, err := api.Info(bytesArg(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(string(out))
}

func main() {
	js.Global().Set("convertDose", js.FuncOf(convertDose))
	js.Global().Set("cbor2dose", js.FuncOf(cbor2dose))
	js.Global().Set("doseInfo", js.FuncOf(doseInfo))
	select {}
}
