// Package htmlreport builds self-contained HTML reports in memory.
//
// # Quick Start
//
// Create a report, set the document style, append blocks, then render:
//
//	r, err := htmlreport.New("Quarterly results", "out/report.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = r.SetStyle(htmlreport.Font("Arial"), htmlreport.BackgroundColor("white"))
//	_ = r.AddHeader("Summary", 1)
//	_ = r.AddParagraph("Revenue grew 12%.", 12, "Verdana")
//	_ = r.AddFigure("charts/revenue.png", "Revenue by month")
//
//	html, err := r.Render()
//	// or write it to the output path:
//	err = r.RenderToFile()
//
// Render is pure: it never touches the filesystem and two renders of an
// unchanged report return identical strings. RenderToFile is a thin wrapper
// that writes the result atomically and reports I/O failures as
// ErrRenderWriteFailed.
//
// # Blocks
//
// A report is an ordered list of blocks. The variants are Header, Paragraph,
// Figure, Table, Markdown and Code; the set is closed. Blocks are validated
// when appended, so a failed Add call leaves the report unchanged and Render
// never rejects a block for being malformed.
//
// Headers and paragraphs accept TextOption values (TextAlign, TextFont,
// TextColor, TextBackground, TextCSS). Tables accept TableCSS, which replaces
// the default table rule. Figures accept FigureOption values (FigureWidth,
// FigureCSS, CaptionSize, CaptionFont, CaptionColor, CaptionBackground).
//
// # Styling
//
// SetStyle applies a partial update of the document style; fields without
// an option keep their value. SetStyleMap does the same from named keys
// and returns ErrUnknownOption for keys it does not recognize.
//
// Rendered CSS is layered in this order: the theme stylesheet (WithTheme,
// WithAssetPath), the document style, table rules (the default rule when a
// table has no TableCSS), then rules passed to InsertCSS.
//
// # Options
//
// New accepts Option values: WithTheme, WithoutTheme, WithAssetPath and
// WithAssetLoader pick the stylesheet and page template; WithTOC adds a
// numbered table of contents; WithSourceDir turns relative figure paths
// into file:// URLs; WithDate records the report date in the document head.
//
// # Concurrency
//
// Each Report carries one mutex. Mutations, accessors and renders are
// serialized; there are no finer-grained guarantees.
//
// # Errors
//
// All errors wrap package sentinels and can be tested with errors.Is:
// ErrInvalidArgument, ErrUnknownOption, ErrRenderWriteFailed,
// ErrStyleNotFound, ErrTemplateNotFound, ErrInvalidAssetPath,
// ErrInvalidTOCDepth, ErrHTMLConversion and ErrTemplateRender.
package htmlreport
