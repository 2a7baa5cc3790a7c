package encode

import (
	"fmt"
	"io"
	"strconv"
)

// emitter wraps an io.Writer and keeps the first write error.
type emitter struct {
	w   io.Writer
	err error
}

// emit writes a formatted line.
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

// emitComment writes a comment line.
func (e *emitter) emitComment(text string) {
	e.emit("; %s", text)
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// WriteText writes records in a line-oriented listing grouped by
// function:
//
//	func main
//	  v12 = Transpose : TensorHandle<Float>  ; model.swift:3:1
//	    name op_Transpose,x,perm$array,$elt
//	    x        Input         value v4 : TensorHandle<Float>
//	    perm     ArrayMarker   type Int32 (int32)
//	    perm     ArrayElement  int 1 : Builtin.Int32
func WriteText(w io.Writer, module string, recs []Record) error {
	e := &emitter{w: w}
	e.emitComment("module " + module)
	fn := ""
	for i := range recs {
		r := &recs[i]
		if i == 0 || r.Func != fn {
			if i > 0 {
				e.emitLine()
			}
			fn = r.Func
			e.emit("func %s", fn)
		}
		head := fmt.Sprintf("  v%d = %s : %s", r.Value, r.Op, r.Type)
		if r.Pos != "" {
			head += "  ; " + r.Pos
		}
		e.emit("%s", head)
		e.emit("    name %s", r.Name)
		for _, o := range r.Operands {
			e.emit("    %-8s %-13s %s", displayName(o.Name), o.Role, formatOperand(o))
		}
	}
	return e.err
}

func displayName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

func formatOperand(o Operand) string {
	switch o.Kind {
	case KindInt:
		return fmt.Sprintf("int %d : %s", o.Int, o.Type)
	case KindFloat:
		return fmt.Sprintf("float %s : %s", strconv.FormatFloat(o.Float, 'g', -1, 64), o.Type)
	case KindString:
		return "string " + strconv.Quote(o.Str)
	case KindType:
		return fmt.Sprintf("type %s (%s)", o.Type, o.DType)
	default:
		return fmt.Sprintf("value v%d : %s", o.Ref, o.Type)
	}
}
