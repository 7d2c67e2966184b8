// =============================================================================
// Sales Ledger Report - XML Writer Module
// =============================================================================
//
// This module renders a report.Report as an XML document for systems that
// ingest XML rather than JSON or YAML.
//
// XML STRUCTURE:
//
//   <salesReport source="ledger.csv" validRecords="58" invalidRecords="2">
//     <validationIssues>
//       <issue row="58">
//         <raw>2019-03-01,Vanilla Single Scoop,50,4,100</raw>
//         <reason>Unit Price * Quantity !== Total Price</reason>
//       </issue>
//     </validationIssues>
//     <totalSales>18820</totalSales>
//     <monthTotals>
//       <month key="2019-01">6910</month>
//     </monthTotals>
//     <mostPopular>
//       <month key="2019-01" item="Butterscotch Single Scoop" quantity="13"
//              minOrders="3" maxOrders="5" avgOrders="4.33"/>
//     </mostPopular>
//     <topRevenue>
//       <month key="2019-01" item="Death by Chocolate">1080</month>
//     </topRevenue>
//     <monthToMonthGrowth>
//       <item name="Almond Fudge">
//         <step from="2019-01" to="2019-02" applicable="false">N/A</step>
//       </item>
//     </monthToMonthGrowth>
//   </salesReport>
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/ginjaninja78/salesreport/internal/report"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootAttributes are additional attributes for the root element.
	// Example: {"xmlns": "http://example.com/sales"}
	RootAttributes map[string]string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootAttributes:        make(map[string]string),
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate renders the report with the default options.
func Generate(rep *report.Report) ([]byte, error) {
	return GenerateWithOptions(rep, DefaultGenerateOptions())
}

// GenerateWithOptions renders the report as an XML document.
//
// PARAMETERS:
//   - rep: The report to render.
//   - options: Declaration, indentation and root attribute options.
//
// RETURNS:
//   - The XML document as a byte slice.
//   - An error if the report is nil.
func GenerateWithOptions(rep *report.Report, options GenerateOptions) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("cannot generate XML for a nil report")
	}

	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	writeElement(&buffer, buildDocument(rep, options), options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element. An element has either a text
// value or children.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

// buildDocument constructs the element tree of the report.
func buildDocument(rep *report.Report, options GenerateOptions) XMLElement {
	root := newElement("salesReport")

	// Root attributes are sorted for stable output.
	keys := make([]string, 0, len(options.RootAttributes))
	for k := range options.RootAttributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		root.attr(k, options.RootAttributes[k])
	}

	if rep.Source != "" {
		root.attr("source", rep.Source)
	}
	root.attr("validRecords", strconv.Itoa(rep.ValidRecords))
	root.attr("invalidRecords", strconv.Itoa(len(rep.ValidationIssues)))

	issues := newElement("validationIssues")
	for _, inv := range rep.ValidationIssues {
		issue := newElement("issue")
		issue.attr("row", strconv.Itoa(inv.RowNumber))
		issue.Children = append(issue.Children, textElement("raw", inv.Raw))
		for _, reason := range inv.Reasons {
			issue.Children = append(issue.Children, textElement("reason", string(reason)))
		}
		issues.Children = append(issues.Children, issue)
	}

	months := newElement("monthTotals")
	for _, m := range rep.MonthTotals {
		month := textElement("month", m.Total.String())
		month.attr("key", m.Month)
		months.Children = append(months.Children, month)
	}

	popular := newElement("mostPopular")
	for _, p := range rep.MostPopular {
		month := newElement("month")
		month.attr("key", p.Month)
		month.attr("item", p.Item)
		month.attr("quantity", p.TotalQuantity.String())
		month.attr("minOrders", strconv.FormatFloat(p.Orders.Min, 'f', -1, 64))
		month.attr("maxOrders", strconv.FormatFloat(p.Orders.Max, 'f', -1, 64))
		month.attr("avgOrders", strconv.FormatFloat(p.Orders.Mean, 'f', 2, 64))
		popular.Children = append(popular.Children, month)
	}

	top := newElement("topRevenue")
	for _, r := range rep.TopRevenue {
		month := textElement("month", r.Revenue.String())
		month.attr("key", r.Month)
		month.attr("item", r.Item)
		top.Children = append(top.Children, month)
	}

	growth := newElement("monthToMonthGrowth")
	for _, g := range rep.MonthToMonthGrowth {
		item := newElement("item")
		item.attr("name", g.Item)
		for _, s := range g.Steps {
			step := textElement("step", s.Growth.Figure())
			step.attr("from", s.From)
			step.attr("to", s.To)
			step.attr("applicable", strconv.FormatBool(s.Growth.Applicable()))
			item.Children = append(item.Children, step)
		}
		growth.Children = append(growth.Children, item)
	}

	root.Children = []XMLElement{
		issues,
		textElement("totalSales", rep.TotalSales.String()),
		months,
		popular,
		top,
		growth,
	}

	return root
}

func newElement(name string) XMLElement {
	return XMLElement{XMLName: xml.Name{Local: name}}
}

// textElement creates an element with a text value.
func textElement(name, value string) XMLElement {
	e := newElement(name)
	e.Value = value
	return e
}

func (e *XMLElement) attr(name, value string) {
	e.Attributes = append(e.Attributes, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, attr := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", attr.Name.Local, escapeXML(attr.Value)))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	if err := xml.EscapeText(&buffer, []byte(s)); err != nil {
		return s
	}
	return buffer.String()
}
