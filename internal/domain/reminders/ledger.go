package reminders

import "context"

// Ledger es el registro persistente de deduplicación: qué pares
// (registro, día de vencimiento) ya dispararon una notificación.
//
// Disciplina de uso (ver Sweeper): se consulta Seen antes de enviar y
// se escribe Mark recién después de que el colaborador confirma el
// envío. Un envío fallido no deja marca, así el registro sigue
// elegible en el próximo sweep. Queda una ventana angosta entre envío
// y marca donde un crash puede duplicar: trade-off aceptado para
// mantener at-least-once.
type Ledger interface {
	Seen(ctx context.Context, key DedupKey) (bool, error)
	Mark(ctx context.Context, key DedupKey) error
}
