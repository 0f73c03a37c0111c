package question

// Language codes with parallel text fields.
const (
	LangDefault = ""
	LangSL      = "sl"
	LangHR      = "hr"
)

// Localize picks the display rendering for lang and falls back to the
// canonical text when the translation is empty.
func Localize(lang, canonical, sl, hr string) string {
	switch lang {
	case LangSL:
		if sl != "" {
			return sl
		}
	case LangHR:
		if hr != "" {
			return hr
		}
	}
	return canonical
}

func (q Question) Prompt(lang string) string {
	return Localize(lang, q.Text, q.TextSL, q.TextHR)
}

func (o Option) Label(lang string) string {
	return Localize(lang, o.Text, o.TextSL, o.TextHR)
}

func (f DropdownField) DisplayLabel(lang string) string {
	return Localize(lang, f.Label, f.LabelSL, f.LabelHR)
}

func (d *DropdownData) DisplayTemplate(lang string) string {
	return Localize(lang, d.Template, d.TemplateSL, d.TemplateHR)
}

func (c Content) DisplayText(lang string) string {
	return Localize(lang, c.Text, c.TextSL, c.TextHR)
}

func (d *OrderingData) DisplayInstructions(lang string) string {
	return Localize(lang, d.Instructions, d.InstructionsSL, d.InstructionsHR)
}

func (d *MatchingData) DisplayInstructions(lang string) string {
	return Localize(lang, d.Instructions, d.InstructionsSL, d.InstructionsHR)
}
