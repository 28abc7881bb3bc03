package caltrain

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is the timetable page reduced to the tables that directly follow a heading.
type Document struct {
	Sections []Section
}

type Section struct {
	Heading string
	Table   *Table
}

type Table struct {
	Rows []Row
}

type Row struct {
	Cells []Cell
}

type Cell struct {
	Text    string
	ColSpan int
	RowSpan int
}

// ParseHTML reads the page and pairs every heading with the table that follows it.
//
// The first pass collects headings and top level tables in document order. The second pass pairs
// a table with the heading right before it. A table with no heading directly before it, or a
// heading followed by another heading, is left out.
func ParseHTML(reader io.Reader) (*Document, error) {
	root, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing timetable html: %w", err)
	}

	var elements []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && (isHeading(node) || node.DataAtom == atom.Table) {
			elements = append(elements, node)
			return
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(root)

	document := &Document{}
	var heading *string

	for _, element := range elements {
		if isHeading(element) {
			text := textContent(element)
			heading = &text
			continue
		}

		if heading == nil {
			continue
		}

		document.Sections = append(document.Sections, Section{
			Heading: *heading,
			Table:   parseTable(element),
		})
		heading = nil
	}

	return document, nil
}

// Lookup finds the table under heading. The heading must appear exactly once.
func (d *Document) Lookup(heading string) (*Table, error) {
	var found *Table
	matches := 0

	for _, section := range d.Sections {
		if section.Heading == heading {
			found = section.Table
			matches++
		}
	}

	switch matches {
	case 0:
		return nil, fmt.Errorf("%q: %w", heading, ErrMissingHeading)
	case 1:
		return found, nil
	default:
		return nil, fmt.Errorf("%q: %w", heading, ErrDuplicateHeading)
	}
}

func (d *Document) Headings() []string {
	headings := make([]string, 0, len(d.Sections))
	for _, section := range d.Sections {
		headings = append(headings, section.Heading)
	}

	return headings
}

func parseTable(tableNode *html.Node) *Table {
	table := &Table{}

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}

			switch child.DataAtom {
			case atom.Table:
				// nested tables belong to their own cell
				continue
			case atom.Tr:
				table.Rows = append(table.Rows, parseRow(child))
			default:
				walk(child)
			}
		}
	}
	walk(tableNode)

	return table
}

func parseRow(rowNode *html.Node) Row {
	row := Row{}

	for child := rowNode.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if child.DataAtom != atom.Td && child.DataAtom != atom.Th {
			continue
		}

		row.Cells = append(row.Cells, Cell{
			Text:    textContent(child),
			ColSpan: spanAttribute(child, "colspan"),
			RowSpan: spanAttribute(child, "rowspan"),
		})
	}

	return row
}

func isHeading(node *html.Node) bool {
	switch node.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}

	return false
}

// spanAttribute returns 1 when the attribute is absent and 0 when it can't be read.
func spanAttribute(node *html.Node, name string) int {
	for _, attribute := range node.Attr {
		if strings.EqualFold(attribute.Key, name) {
			span, err := strconv.Atoi(strings.TrimSpace(attribute.Val))
			if err != nil {
				return 0
			}
			return span
		}
	}

	return 1
}

// textContent joins all descendant text with runs of whitespace collapsed to one space.
func textContent(node *html.Node) string {
	var builder strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			builder.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			builder.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)

	return strings.Join(strings.Fields(builder.String()), " ")
}
