package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/imobiliariaxyz/bot-corretor/internal/catalog"
)

// Selection ids understood by the engine. Main-menu rows use the short
// ids; property-type buttons use compound transaction_type ids.
const (
	SelectionBuy      = "buy"
	SelectionSell     = "sell"
	SelectionRent     = "rent"
	SelectionSchedule = "schedule"
	SelectionContact  = "contact"

	SelectionBuyHouse      = "buy_house"
	SelectionBuyApartment  = "buy_apartment"
	SelectionBuyLand       = "buy_land"
	SelectionRentHouse     = "rent_house"
	SelectionRentApartment = "rent_apartment"

	SelectionScheduleVisit = "schedule_visit"
	SelectionSeeMore       = "see_more"
	SelectionTalkAgent     = "talk_agent"
)

func welcomeMessage(name string, now time.Time) string {
	if name == "" {
		name = "Cliente"
	}
	greeting := "Bom dia"
	switch hour := now.Hour(); {
	case hour >= 12 && hour < 18:
		greeting = "Boa tarde"
	case hour >= 18:
		greeting = "Boa noite"
	}

	return fmt.Sprintf(`%s, %s! 👋

Bem-vindo(a) à *Imobiliária XYZ*! 🏠

Sou seu assistente virtual e estou aqui para ajudar você a encontrar o imóvel perfeito ou auxiliar na venda/aluguel do seu imóvel.

Como posso te ajudar hoje? 😊`, greeting, name)
}

func mainMenu() ListReply {
	return ListReply{
		Title:       "📋 Menu Principal",
		Description: "Escolha uma das opções abaixo:",
		ButtonText:  "Ver Opções",
		Sections: []ListSection{
			{
				Title: "Serviços Disponíveis",
				Rows: []ListRow{
					{ID: SelectionBuy, Title: "🏠 Comprar Imóvel", Description: "Encontre o imóvel dos seus sonhos"},
					{ID: SelectionSell, Title: "💰 Vender Imóvel", Description: "Anuncie seu imóvel conosco"},
					{ID: SelectionRent, Title: "🔑 Alugar Imóvel", Description: "Encontre imóveis para alugar"},
					{ID: SelectionSchedule, Title: "📅 Agendar Visita", Description: "Agende uma visita a um imóvel"},
					{ID: SelectionContact, Title: "📞 Falar com Corretor", Description: "Entre em contato com um corretor"},
				},
			},
		},
	}
}

func buyingTypeButtons() ButtonsReply {
	return ButtonsReply{
		Title:       "🏠 Comprar Imóvel",
		Description: "Que tipo de imóvel você procura?",
		Buttons: []Button{
			{ID: SelectionBuyHouse, Label: "🏡 Casa"},
			{ID: SelectionBuyApartment, Label: "🏢 Apartamento"},
			{ID: SelectionBuyLand, Label: "🌍 Terreno"},
		},
	}
}

func rentingTypeButtons() ButtonsReply {
	return ButtonsReply{
		Title:       "🔑 Alugar Imóvel",
		Description: "Que tipo de imóvel você procura para alugar?",
		Buttons: []Button{
			{ID: SelectionRentHouse, Label: "🏡 Casa"},
			{ID: SelectionRentApartment, Label: "🏢 Apartamento"},
		},
	}
}

func resultActionButtons() ButtonsReply {
	return ButtonsReply{
		Title:       "E agora?",
		Description: "O que você gostaria de fazer?",
		Buttons: []Button{
			{ID: SelectionScheduleVisit, Label: "📅 Agendar visita"},
			{ID: SelectionSeeMore, Label: "🔍 Ver mais imóveis"},
			{ID: SelectionTalkAgent, Label: "📞 Falar com corretor"},
		},
	}
}

func propertyCard(p catalog.Property) string {
	var features strings.Builder
	for _, f := range p.Features {
		features.WriteString("• ")
		features.WriteString(f)
		features.WriteString("\n")
	}

	card := fmt.Sprintf(`🏠 *%s*

📍 *Localização:* %s
💰 *Valor:* %s
📐 *Área:* %dm²
🛏️ *Quartos:* %d
🚿 *Banheiros:* %d
🚗 *Vagas:* %d

📝 *Descrição:*
%s

✨ *Diferenciais:*
%s
🔑 *Código:* %s`,
		p.Title, p.Address, formatPrice(p.Price, p.Transaction),
		p.Area, p.Bedrooms, p.Bathrooms, p.Parking,
		p.Description, strings.TrimRight(features.String(), "\n"), p.Code)

	if p.VirtualTour != "" {
		card += "\n🎥 *Tour virtual:* " + p.VirtualTour
	}
	return card
}

func formatPrice(price int, transaction catalog.Transaction) string {
	formatted := groupThousands(price)
	if transaction == catalog.TransactionRent {
		return "R$ " + formatted + "/mês"
	}
	return "R$ " + formatted
}

// groupThousands renders 1234567 as "1.234.567" (pt-BR convention).
func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
		if len(s) > lead {
			sb.WriteString(".")
		}
	}
	for i := lead; i < len(s); i += 3 {
		sb.WriteString(s[i : i+3])
		if i+3 < len(s) {
			sb.WriteString(".")
		}
	}
	return sb.String()
}

func sellingFormMessage() string {
	return `🏠 *Vamos anunciar seu imóvel!*

Para começar, preciso de algumas informações:

1️⃣ *Tipo de imóvel* (casa, apartamento, terreno, etc)
2️⃣ *Endereço completo*
3️⃣ *Área em m²*
4️⃣ *Número de quartos e banheiros*
5️⃣ *Valor desejado*
6️⃣ *Seu telefone para contato*

Pode me enviar tudo em uma mensagem só! 📝

Exemplo:
"Casa na Rua das Flores 123, Centro, 150m², 3 quartos, 2 banheiros, R$ 450.000, (48) 98765-4321"`
}

func sellingReceivedMessage() string {
	return `✅ Recebi as informações do seu imóvel!

Um de nossos corretores vai analisar os dados e entrar em contato para agendar a avaliação e as fotos.

Digite "menu" para voltar ao início.`
}

func scheduleFormMessage() string {
	return `📅 *Vamos agendar sua visita!*

Me diga:
🏠 O código ou endereço do imóvel
📆 O melhor dia para você
🕐 O melhor horário

Pode responder tudo junto, exemplo:
"APV002, sexta-feira à tarde"`
}

func scheduleConfirmationMessage() string {
	return `✅ *Pedido de visita recebido!*

Um corretor vai confirmar a data e o horário com você em breve. 🤝

📝 *Observações:*
• Leve um documento com foto
• Em caso de imprevistos, avise com antecedência

Digite "menu" para voltar ao início.`
}

func contactInfoMessage() string {
	return `📞 *Entre em contato conosco!*

🏢 *Imobiliária XYZ*

📱 *WhatsApp:* (48) 99999-9999
☎️ *Telefone:* (48) 3333-3333
📧 *E-mail:* contato@imobiliariaxyz.com.br

🕐 *Horário de atendimento:*
Segunda a Sexta: 8h às 18h
Sábado: 9h às 13h

💬 Um de nossos corretores entrará em contato em breve!`
}

func mainMenuFallbackMessage() string {
	return `Desculpe, não entendi sua opção. Por favor, escolha um número de 1 a 5 ou digite "menu" para ver as opções novamente.`
}

func noResultsMessage() string {
	return `No momento não encontrei imóveis com essas características. 😔

Quer ampliar a busca? Me diga outra região, outro valor ou outro tipo de imóvel.

Ou digite "menu" para voltar ao início.`
}

func foundResultsMessage(count int) string {
	if count == 1 {
		return "Encontrei 1 imóvel que pode te interessar! 🏠✨"
	}
	return fmt.Sprintf("Encontrei %d imóveis que podem te interessar! 🏠✨", count)
}

func refineSearchMessage() string {
	return `Me conte mais detalhes para eu refinar a busca:

💵 Qual seu orçamento máximo?
📍 Em qual região você prefere?
🛏️ Quantos quartos precisa?

Pode responder tudo junto, exemplo:
"Até 500 mil, na Lagoa, 3 quartos"`
}

func audioAckMessage() string {
	return "🎤 Recebi seu áudio! Um instante enquanto eu escuto..."
}

func audioUnavailableMessage() string {
	return `Não consegui baixar o seu áudio. 😔

Pode digitar sua mensagem, por favor?`
}

func audioTooLargeMessage() string {
	return `Seu áudio é muito grande para eu processar (limite de 25 MB). 😔

Pode enviar um áudio mais curto ou digitar sua mensagem?`
}

func audioTranscriptionFailedMessage() string {
	return `Não consegui entender o seu áudio. 😔

Pode digitar sua mensagem, por favor? Ou digite "menu" para ver as opções.`
}

func errorMessage() string {
	return `❌ Ops! Ocorreu um erro ao processar sua solicitação.

Por favor, tente novamente ou digite "menu" para recomeçar.

Se preferir, ligue para: (48) 3333-3333 📞`
}

func nearbyResultsMessage(count int) string {
	if count == 0 {
		return `Não encontrei imóveis num raio de 5 km dessa localização. 😔

Digite "menu" para buscar de outras formas.`
	}
	return fmt.Sprintf("📍 Encontrei %d imóveis num raio de 5 km dessa localização!", count)
}
