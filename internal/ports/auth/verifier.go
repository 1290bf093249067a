package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// La verificación real vive en el servicio de identidad (adapter odin);
// este core no maneja JWT directamente.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
