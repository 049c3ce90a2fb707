package auth

// Claims es la identidad que el verificador extrae del token: el sistema solo
// necesita el id opaco de usuario que emite el servicio de cuentas.
type Claims struct {
	UserID string
}
