package storefront

import (
	"errors"
	"fmt"

	"github.com/example/storefront/internal/apiclient"
	"github.com/example/storefront/internal/domain/admin"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/checkout"
	"github.com/example/storefront/internal/domain/session"
)

// Notices shown to the visitor.
const (
	MsgOrderPlaced        = "Pedido realizado com sucesso!"
	MsgOrderFailed        = "Erro ao processar pedido: "
	MsgLoginFailed        = "Erro no login: "
	MsgPasswordMismatch   = "As senhas não coincidem"
	MsgRegisterFailed     = "Erro no cadastro: "
	MsgInvalidCredentials = "Credenciais inválidas"
	MsgProductAdded       = "Produto adicionado com sucesso!"
	MsgProductFailed      = "Erro ao adicionar produto: "
	MsgContactSent        = "Mensagem enviada com sucesso! Entraremos em contato em breve."
)

var localMessages = []struct {
	err error
	msg string
}{
	{checkout.ErrMissingField, "preencha todos os campos obrigatórios"},
	{session.ErrMissingField, "preencha todos os campos obrigatórios"},
	{admin.ErrMissingField, "preencha todos os campos obrigatórios"},
	{ErrMissingField, "preencha todos os campos obrigatórios"},
	{checkout.ErrInvalidEmail, "e-mail inválido"},
	{checkout.ErrUnknownColor, "cor indisponível para este produto"},
	{admin.ErrUnknownColor, "cor fora da paleta"},
	{checkout.ErrCheckoutClosed, "nenhum produto selecionado"},
	{catalog.ErrProductNotFound, "produto não encontrado"},
	{admin.ErrAdminRequired, "acesso restrito ao administrador"},
	{admin.ErrInvalidPrice, "preço inválido"},
	{admin.ErrInvalidStock, "estoque inválido"},
	{admin.ErrInvalidImage, "URL da imagem inválida"},
	{apiclient.ErrTransport, "não foi possível contactar o servidor"},
}

// describe turns an error into the text shown after a notice prefix.
func describe(err error) string {
	if msg := apiclient.Message(err); msg != "" {
		return msg
	}
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("resposta inesperada do servidor (%d)", se.Status)
	}
	for _, m := range localMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}
