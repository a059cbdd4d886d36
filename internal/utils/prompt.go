package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// AskConfirmation prints message and reads a yes/no answer from in. Anything
// other than "y" or "yes" is a no, including end of input. force skips the
// prompt.
func AskConfirmation(in io.Reader, out io.Writer, message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(out, "🤔 %s (y/N): ", message)
	reader := bufio.NewReader(in)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
