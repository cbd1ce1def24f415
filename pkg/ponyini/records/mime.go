package records

import "strings"

// UnknownMIMEType is used for speech files without an extension.
const UnknownMIMEType = "audio/x-unknown"

// AudioMIMETypes maps lowercase file extensions to the MIME type (with codec
// hint where the container is ambiguous) a browser audio element expects.
var AudioMIMETypes = map[string]string{
	"wav":  "audio/wav",
	"webm": "audio/webm",
	"mpeg": "audio/mpeg",
	"mpga": "audio/mpeg",
	"mpg":  "audio/mpeg",
	"mp1":  `audio/mpeg;codecs="mp1"`,
	"mp2":  `audio/mpeg;codecs="mp2"`,
	"mp3":  `audio/mpeg;codecs="mp3"`,
	"mp4":  "audio/mp4",
	"mp4a": "audio/mp4",
	"ogg":  "audio/ogg",
	"oga":  "audio/ogg",
	"flac": `audio/ogg;codecs="flac"`,
	"spx":  `audio/ogg;codecs="speex"`,
}

// MIMEType derives the audio MIME type of a file name from the text after its
// last ".". Unknown extensions map to "audio/x-<ext>".
func MIMEType(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return UnknownMIMEType
	}

	ext := strings.ToLower(filename[i+1:])
	if mime, ok := AudioMIMETypes[ext]; ok {
		return mime
	}
	return "audio/x-" + ext
}
