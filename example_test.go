package htmlinline_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-htmlinline"
)

// Example inlines a script, a stylesheet and an image from a build directory.
func Example() {
	dir, err := os.MkdirTemp("", "htmlinline-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	files := map[string]string{
		"app.js":   `el.innerHTML = s.replace(/</g, "&lt;")`,
		"app.css":  "body{margin:0}",
		"logo.png": "\x01\x02\x03",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			fmt.Println("error:", err)
			return
		}
	}

	inl, err := htmlinline.NewInliner()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out, err := inl.Inline(context.Background(),
		`<link rel="stylesheet" href="app.css"><img src="logo.png" alt="logo"><script defer src="app.js"></script>`,
		dir)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)
	// Output: <style>body{margin:0}</style><img alt="logo" src="data:image/png;base64,AQID"><script>el.innerHTML = s.replace(new RegExp('<', 'g'), "&lt;")</script>
}

// ExampleWithMIMEType types a custom extension.
func ExampleWithMIMEType() {
	dir, err := os.MkdirTemp("", "htmlinline-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	if err := os.WriteFile(filepath.Join(dir, "hero.avif"), []byte{1, 2, 3}, 0o644); err != nil {
		fmt.Println("error:", err)
		return
	}

	inl, err := htmlinline.NewInliner(htmlinline.WithMIMEType("avif", "image/avif"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	out, err := inl.Inline(context.Background(), `<img src="hero.avif">`, dir)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)
	// Output: <img src="data:image/avif;base64,AQID">
}
