package service

import (
	"fmt"

	"app/internal/model"
)

// BuildFreeSermonPrompt renders the exact instruction sent to the
// generation provider. The prompt is also persisted on the artifact.
func BuildFreeSermonPrompt(req model.SermonRequest) string {
	return fmt.Sprintf(`Você é um assistente pastoral que escreve esboços de sermão para líderes cristãos em português (pt-BR).
Gere um único esboço completo seguindo rigorosamente o formato JSON especificado.
Contexto do pedido:
- Categoria: %s
- Tema ou texto-base: %s
- Profundidade: %s

Requisitos do esboço:
1. Apresente uma tese central clara e concisa que resuma a mensagem principal.
2. Desenvolva entre 2 e 3 pontos principais numerados, cada um com uma breve explicação prática.
3. Inclua uma ilustração única que ajude a aplicar a tese de forma memorável.
4. Cite de 3 a 5 referências bíblicas relevantes (livro, capítulo e versículo) com pequenas notas de aplicação.
5. Finalize com um chamado à ação que reforce a aplicação pastoral.

Formato de saída (JSON válido, sem texto adicional):
{
  "thesis": "string",
  "points": [
    { "title": "string", "summary": "string" }
  ],
  "illustration": "string",
  "references": [
    { "reference": "Livro capítulo:versículo", "note": "string" }
  ],
  "callToAction": "string"
}`, req.Category, req.Theme, req.Depth)
}
