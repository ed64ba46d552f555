package tui

import (
	"datebook/internal/docs"
)

const helpMD = `# Keys

- a / n: add entry
- enter / e: edit the selected entry
- d: toggle done
- x: delete (asks for confirmation)
- /: filter by title
- r: reload from disk
- ?: this help
- q / ctrl+c: quit

In the editor, tab cycles fields and ctrl+s saves. Esc asks for
confirmation first when there are unsaved edits.
`

func (m appModel) renderHelpModal() string {
	bodyW := modalBodyWidth(m.width)

	md := helpMD
	if page, ok := docs.Get("datefield"); ok {
		md += "\n" + page
	}

	body := renderMarkdown(md, bodyW)
	help := styleMuted().Width(bodyW).Render("esc/q: close")
	return renderModalBox(m.width, "Help", body+"\n\n"+help)
}
