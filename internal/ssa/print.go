package ssa

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/opcanon/internal/types"
)

// Fprint writes the SSA representation of a function to w.
//
// Format:
//
//	func name(x TensorHandle<Float>):
//	  b0: (entry)
//	    v0 = Arg <TensorHandle<Float>> {x}
//	    v1 = ConstInt <Builtin.Int64> [42]
//	    v2 = GraphOp <TensorHandle<Float>> {op_Add,x,y} v0 v0
//	    Return v2
func Fprint(w io.Writer, f *Func) {
	fmt.Fprintf(w, "func %s", f.Name)
	if f.Sig != nil {
		fmt.Fprintf(w, "(")
		for i := 0; i < f.Sig.NumParams(); i++ {
			if i > 0 {
				fmt.Fprintf(w, ", ")
			}
			p := f.Sig.Param(i)
			fmt.Fprintf(w, "%s %s", p.Name(), p.Type())
		}
		fmt.Fprintf(w, ")")
		if f.Sig.Result() != nil {
			fmt.Fprintf(w, " %s", f.Sig.Result())
		}
	}
	fmt.Fprintf(w, ":\n")

	for _, b := range f.Blocks {
		fprintBlock(w, b, f)
	}
}

// FprintModule writes every global initializer and function of m to w.
func FprintModule(w io.Writer, m *Module) {
	for _, g := range m.Globals {
		fmt.Fprintf(w, "global %s <%s>\n", g, g.Type)
		if g.Init != nil {
			Fprint(w, g.InitFunc())
		}
		fmt.Fprintln(w)
	}
	for i, f := range m.Funcs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		Fprint(w, f)
	}
}

// fprintBlock writes a single block to w.
func fprintBlock(w io.Writer, b *Block, f *Func) {
	label := ""
	if b == f.Entry {
		label = " (entry)"
	}

	predsStr := ""
	if len(b.Preds) > 0 {
		preds := make([]string, len(b.Preds))
		for i, p := range b.Preds {
			preds[i] = p.String()
		}
		predsStr = " <- " + strings.Join(preds, " ")
	}

	fmt.Fprintf(w, "  %s:%s%s\n", b, label, predsStr)

	for _, v := range b.Values {
		fmt.Fprintf(w, "    %s\n", formatValue(v))
	}

	fmt.Fprintf(w, "    %s\n", formatTerminator(b))
}

// formatValue formats a value as a string.
func formatValue(v *Value) string {
	var sb strings.Builder

	// Void ops don't get "vN = ".
	if v.Op.IsVoid() {
		sb.WriteString(v.Op.String())
	} else {
		fmt.Fprintf(&sb, "v%d = %s", v.ID, v.Op)
	}

	if v.Type != nil {
		fmt.Fprintf(&sb, " <%s>", v.Type)
	}

	switch v.Op {
	case OpConstInt, OpTupleExtract, OpStructExtract:
		fmt.Fprintf(&sb, " [%d]", v.AuxInt)
	case OpConstFloat:
		fmt.Fprintf(&sb, " [%g]", v.AuxFloat)
	case OpConstString:
		if StringEncoding(v.AuxInt) == UTF16 {
			sb.WriteString(" [utf16]")
		}
	default:
		if v.AuxInt != 0 {
			fmt.Fprintf(&sb, " [%d]", v.AuxInt)
		}
	}

	if v.Aux != nil {
		if s, ok := v.Aux.(string); ok && v.Op == OpConstString {
			fmt.Fprintf(&sb, " {%q}", s)
		} else {
			fmt.Fprintf(&sb, " {%s}", formatAux(v.Aux))
		}
	}

	for _, arg := range v.Args {
		fmt.Fprintf(&sb, " v%d", arg.ID)
	}

	return sb.String()
}

// formatTerminator formats a block terminator.
func formatTerminator(b *Block) string {
	switch b.Kind {
	case BlockPlain:
		if len(b.Succs) > 0 {
			return fmt.Sprintf("Plain -> %s", b.Succs[0])
		}
		return "Plain"
	case BlockIf:
		if len(b.Controls) > 0 && len(b.Succs) >= 2 {
			return fmt.Sprintf("If v%d -> %s %s", b.Controls[0].ID, b.Succs[0], b.Succs[1])
		}
		return "If (malformed)"
	case BlockReturn:
		if len(b.Controls) > 0 && b.Controls[0] != nil {
			return fmt.Sprintf("Return v%d", b.Controls[0].ID)
		}
		return "Return"
	case BlockExit:
		return "Exit"
	default:
		return "???"
	}
}

// Sprint returns the SSA representation of a function as a string.
func Sprint(f *Func) string {
	var sb strings.Builder
	Fprint(&sb, f)
	return sb.String()
}

// formatAux formats an Aux value for display.
func formatAux(aux interface{}) string {
	switch a := aux.(type) {
	case *Global:
		return a.String()
	case types.Type:
		return a.String()
	case string:
		return a
	default:
		return fmt.Sprintf("%v", aux)
	}
}
