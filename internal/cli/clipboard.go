package cli

import "github.com/atotto/clipboard"

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll
