package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
)

// RenderCredentials formats the credential pair for the console.
func RenderCredentials(creds model.Credentials) string {
	var b strings.Builder
	b.WriteString(resultTitleStyle.Render("Results for your account"))
	b.WriteString("\n\n")
	b.WriteString(resultKeyStyle.Render("API ID:") + resultValueStyle.Render(creds.ID))
	b.WriteString("\n")
	b.WriteString(resultKeyStyle.Render("API Hash:") + resultValueStyle.Render(creds.Hash))
	return resultBoxStyle.Render(b.String())
}

// PrintCredentials writes the rendered pair to w followed by a newline.
func PrintCredentials(w io.Writer, creds model.Credentials) error {
	_, err := fmt.Fprintln(w, RenderCredentials(creds))
	return err
}
