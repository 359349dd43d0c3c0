// Command rangelocator demonstrates the full serialize/mutate/restore
// cycle against an in-memory document.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	kitlog "github.com/go-kit/log"

	"github.com/acsamson/range-kit/dom"
	"github.com/acsamson/range-kit/domadapter"
	"github.com/acsamson/range-kit/locator"
)

func main() {
	fmt.Println("range-kit — durable text-range locator demo")

	doc, err := dom.ParseHTML(`<div id="a"><p id="b">Hello World</p></div>`)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse:", err)
		os.Exit(1)
	}

	target := doc.GetElementById("b")
	if target == nil {
		fmt.Fprintln(os.Stderr, "could not find #b")
		os.Exit(1)
	}
	textNode := target.AsNode().FirstChild()

	adapter := domadapter.New(doc)
	cfg := locator.NewConfig()

	// Select "World" inside "Hello World" (offsets 6..11).
	d := locator.Serialize(adapter, cfg, textNode, 6, textNode, 11, locator.SerializeOptions{})
	if d == nil {
		fmt.Fprintln(os.Stderr, "serialize: collapsed or empty selection")
		os.Exit(1)
	}

	encoded, _ := json.MarshalIndent(d, "", "  ")
	fmt.Println("descriptor:")
	fmt.Println(string(encoded))

	// Simulate drift: move #b into a new wrapper, same id.
	wrapper := doc.CreateElement("section")
	parent := target.AsNode().ParentNode()
	parent.AppendChild(wrapper.AsNode())
	wrapper.AsNode().AppendChild(target.AsNode())

	metrics := locator.NewMetrics()
	logger := kitlog.NewLogfmtLogger(os.Stderr)
	restorer := locator.NewRestorer(adapter, cfg, locator.ContainerConfig{}, metrics, logger)

	result := restorer.Restore(d)
	if result.Succeeded() {
		text := adapter.RangeText(adapter.MakeRange(result.Range.StartContainer, result.Range.StartOffset, result.Range.EndContainer, result.Range.EndOffset))
		fmt.Printf("restored at %s: %q\n", result.Layer, text)
	} else {
		fmt.Println("restore failed:", result.Error)
	}

	fmt.Print(metrics.Report())
}
