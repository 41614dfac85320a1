package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "JantaVoice Backend",
    "description": "Civic complaint portal: complaint intake and tracking, voice complaints, recyclable pickup scheduling, schemes chatbot",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {}
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
