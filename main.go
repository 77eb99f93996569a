package main

import "github.com/gestaocontabil/backend/cmd"

// @title        Gestão Contábil API
// @version      1.0
// @description  Backend do sistema de gestão para escritórios de contabilidade.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cmd.Execute()
}
