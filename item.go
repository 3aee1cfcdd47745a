package genco

// Kind identifies the variant held by an Item.
type Kind int

const (
	// LiteralKind holds an opaque, already-formatted fragment of text.
	LiteralKind Kind = iota + 1

	// LangKind holds a LangItem: a backend-specific value that renders to
	// text and may contribute an import to the preamble.
	LangKind

	// SpaceKind requests exactly one column of separation from the next
	// non-empty output on the same line.
	SpaceKind

	// PushKind requests that the next non-empty output start on a fresh
	// line.
	PushKind

	// LineKind requests that the next non-empty output start after an
	// intervening empty line.
	LineKind

	// IndentKind raises or lowers the current indentation level by one
	// step; Item.IndentDelta distinguishes +1 from -1.
	IndentKind
)

func (k Kind) String() string {
	return kindToDescription[k]
}

func (k Kind) GoString() string {
	return kindToDescription[k]
}

func init() {
	// Every Kind must carry a description; this keeps the table honest as
	// variants are added.
	for k := LiteralKind; k <= IndentKind; k++ {
		if kindToDescription[k] == "" {
			panic("genco: Kind missing from kindToDescription")
		}
	}
}

var kindToDescription = map[Kind]string{
	LiteralKind: "LiteralKind",
	LangKind:    "LangKind",
	SpaceKind:   "SpaceKind",
	PushKind:    "PushKind",
	LineKind:    "LineKind",
	IndentKind:  "IndentKind",
}

// LangItem is a backend-specific value embedded in a Stream. It formats
// itself through the active Lang and may optionally participate in import
// hoisting; see Lang.FormatItem and Lang.AsImport.
type LangItem interface {
	// ItemString returns the item's textual form. Item.String() uses it for
	// debugging, and a backend's Lang.FormatItem may render the item with it
	// (lang/golang and lang/js both do).
	ItemString() string
}

// Item is one unit of a Stream: a literal fragment, a language item, or a
// whitespace/indentation intent. Items are created by Stream operations or
// by Encoder EvalExpr instructions, are never mutated after creation, and
// carry no source-position information.
type Item struct {
	Kind Kind

	// Literal holds the text for a LiteralKind item.
	Literal string

	// Lang holds the payload for a LangKind item.
	Lang LangItem

	// IndentDelta is +1 or -1 for an IndentKind item.
	IndentDelta int
}

// String renders a human-readable (not backend-accurate) form of the item,
// useful for debugging and for LangItem implementations that don't need a
// real backend (e.g. plan dumps).
func (it Item) String() string {
	switch it.Kind {
	case LiteralKind:
		return it.Literal
	case LangKind:
		if it.Lang != nil {
			return it.Lang.ItemString()
		}
		return ""
	case SpaceKind:
		return "<space>"
	case PushKind:
		return "<push>"
	case LineKind:
		return "<line>"
	case IndentKind:
		if it.IndentDelta > 0 {
			return "<indent>"
		}
		return "<unindent>"
	default:
		return ""
	}
}

// Literal wraps text as a LiteralKind Item, for use with Item-accepting
// helpers such as WithArguments and Stream.Add.
func Literal(text string) Item { return literalItem(text) }

// Of wraps a LangItem as an Item.
func Of(v LangItem) Item { return langItem(v) }

func literalItem(s string) Item { return Item{Kind: LiteralKind, Literal: s} }
func langItem(v LangItem) Item  { return Item{Kind: LangKind, Lang: v} }
func spaceItem() Item           { return Item{Kind: SpaceKind} }
func pushItem() Item            { return Item{Kind: PushKind} }
func lineItem() Item            { return Item{Kind: LineKind} }
func indentItem(delta int) Item { return Item{Kind: IndentKind, IndentDelta: delta} }
