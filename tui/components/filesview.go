package components

import (
	"fmt"
	"hourbox/files"
	L "hourbox/logger"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// FileRow is one line of the file browser. The first row of a listing is
// always the parent entry "../" with an empty Id.
type FileRow struct {
	Id       string
	Name     string
	IsFolder bool
	Size     string
	Date     time.Time
}

func (r FileRow) IsParent() bool {
	return r.Id == ""
}

func (r FileRow) Kind() files.ItemKind {
	if r.IsFolder {
		return files.ITEM_KIND_FOLDER
	}
	return files.ITEM_KIND_FILE
}

func FileRows(listing files.Listing) []FileRow {
	rows := []FileRow{{Name: "../", IsFolder: true}}
	for _, f := range listing.Folders {
		rows = append(rows, FileRow{Id: f.Id, Name: f.Name + "/", IsFolder: true, Date: f.CreatedAt})
	}
	for _, f := range listing.Files {
		rows = append(rows, FileRow{Id: f.Id, Name: f.Name, Size: f.Size, Date: f.UploadedAt})
	}
	return rows
}

// VisibleFileRows is how many rows fit in the browser for a terminal height.
func VisibleFileRows(height int) int {
	return max(height-12, 1)
}

// renders the file browser for one folder, marking selected items with '*'
func RenderFilesView(
	rows []FileRow,
	path string,
	contentCursor int,
	contentOffset int,
	isSelected func(id string) bool,
	focusOnContent bool,
	width int,
	height int,
) string {
	var sb strings.Builder

	sb.WriteString(DimStyle.Render("Files in "))
	sb.WriteString(GreenStyle.Render(path) + "\n")

	markWidth := 2
	sizeWidth := 10
	dateWidth := 16
	nameWidth := max(width-markWidth-sizeWidth-dateWidth-5, 8)

	headerStyle := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	headerLine := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Width(markWidth).Render(""),
		headerStyle.Width(nameWidth).Render("NAME"),
		headerStyle.Width(sizeWidth).Render("SIZE"),
		headerStyle.Width(dateWidth).Render("ADDED"),
	)
	sb.WriteString(headerLine + "\n")

	maxVisible := VisibleFileRows(height)
	end := contentOffset + maxVisible
	for i := contentOffset; i < len(rows) && i < end; i++ {
		row := rows[i]

		mark := ""
		markStyle := sidebarItemStyle
		if !row.IsParent() && isSelected(row.Id) {
			mark = "*"
			markStyle = markedItemStyle
		}
		nameStr := L.TruncateString(row.Name, nameWidth, L.TRUNC_CENTER)
		date := ""
		if !row.Date.IsZero() {
			date = row.Date.Local().Format("2006-01-02 15:04")
		}
		nameStyle := lipgloss.NewStyle().Width(nameWidth)
		if row.IsFolder {
			nameStyle = nameStyle.Foreground(ColorBlue)
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			markStyle.Width(markWidth).Render(mark),
			nameStyle.Render(nameStr),
			lipgloss.NewStyle().Width(sizeWidth).Render(row.Size),
			lipgloss.NewStyle().Width(dateWidth).Render(date),
		)

		if i == contentCursor && focusOnContent {
			sb.WriteString(selectedItemStyle.Width(width - 2).Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	if len(rows) > end {
		sb.WriteString(DimStyle.Render(fmt.Sprintf("... %d more", len(rows)-end)))
	}
	if len(rows) == 1 {
		sb.WriteString(DimStyle.Render("  Empty folder. Use 'hourbox file upload PATH --folder " + path + "'."))
	}

	return sb.String()
}
