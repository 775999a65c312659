// Package md2html converts a small, line-oriented Markdown dialect to HTML.
//
// # Quick Start
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\n\n**World**",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", result.HTML, 0o644)
//
// For the bare line engine with no options, use ConvertLines or ConvertString.
//
// # Line Engine
//
// The default engine reads one line at a time. A small state machine tracks
// fenced code blocks and nested lists; every other line runs through a fixed
// chain of regular-expression rewrites:
//
//  1. Headers (# to ######)
//  2. Bold and italic (***, **, *)
//  3. Inline code
//  4. Horizontal rules (---)
//  5. Images
//  6. Links
//  7. Strikethrough (~~)
//
// Blank lines become <br />. Content is not HTML-escaped, and tables,
// blockquotes, and reference links are not recognized. Use EngineCommonMark
// when full Markdown is needed.
//
// # Configuration
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithEngine(md2html.EngineCommonMark),
//	    md2html.WithStandalone(true),
//	    md2html.WithStyle("minimal"),
//	    md2html.WithAssetPath("/path/to/assets"),
//	)
//
// With standalone output the fragment is wrapped in an HTML5 document whose
// title comes from Input.Title, then the first <h1>, then "Document".
//
// # Custom Styles
//
// A custom asset directory overrides the embedded styles by name:
//
//	assets/
//	└── styles/
//	    └── custom.css
package md2html
