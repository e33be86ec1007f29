package catalog

// seedProperties is the agency portfolio loaded at startup. Records are
// append-only; insertion order is the order results are presented in.
var seedProperties = []Property{
	{
		ID: 1, Code: "APV001", Type: TypeApartment, Transaction: TransactionSale,
		Title:   "Cobertura Duplex Vista Mar - Jurerê Internacional",
		Address: "Av. dos Búzios, 1500 - Jurerê Internacional, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Jurerê Internacional",
		Price: 2000000, Area: 280, Bedrooms: 4, Suites: 4, Bathrooms: 5, Parking: 4,
		Description: "Espetacular cobertura duplex com vista panorâmica para o mar. Acabamento de altíssimo padrão, automação completa e terraço gourmet privativo com piscina aquecida.",
		Features:    []string{"Vista mar frontal", "Piscina privativa aquecida", "Churrasqueira e forno de pizza", "Adega climatizada", "Home theater", "Ar condicionado central"},
		Images:      []string{"https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800"},
		VirtualTour: "https://my.matterport.com/show/?m=SxQL3iGyvQk",
		Location:    &Coordinates{Lat: -27.4376, Lng: -48.4506},
	},
	{
		ID: 2, Code: "APV002", Type: TypeApartment, Transaction: TransactionSale,
		Title:   "Apartamento Garden - Lagoa da Conceição",
		Address: "Rua Afonso Delambert, 320 - Lagoa da Conceição, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Lagoa da Conceição",
		Price: 850000, Area: 120, Bedrooms: 3, Suites: 1, Bathrooms: 2, Parking: 2,
		Description: "Lindo apartamento garden em condomínio fechado próximo à Lagoa. Jardim privativo de 80m², perfeito para pets.",
		Features:    []string{"Jardim privativo 80m²", "Pet friendly", "Churrasqueira no jardim", "Portaria 24h", "Próximo ao Centrinho da Lagoa"},
		Images:      []string{"https://images.unsplash.com/photo-1580587771525-78b9dba3b914?w=800"},
		VirtualTour: "https://my.matterport.com/show/?m=ZmYzNjE2MDUt",
		Location:    &Coordinates{Lat: -27.6032, Lng: -48.4729},
	},
	{
		ID: 3, Code: "APV003", Type: TypeApartment, Transaction: TransactionSale,
		Title:   "Studio Moderno - Centro",
		Address: "Rua Felipe Schmidt, 505 - Centro, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Centro",
		Price: 400000, Area: 45, Bedrooms: 1, Suites: 0, Bathrooms: 1, Parking: 1,
		Description: "Studio completamente mobiliado e decorado, ideal para investimento ou moradia. Excelente localização no coração da cidade.",
		Features:    []string{"Totalmente mobiliado", "Varanda", "Academia", "Coworking", "Vista cidade"},
		Images:      []string{"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800"},
		Location:    &Coordinates{Lat: -27.5969, Lng: -48.5495},
	},
	{
		ID: 4, Code: "APV006", Type: TypeApartment, Transaction: TransactionSale,
		Title:   "Apartamento Novo - Campeche",
		Address: "Rua Pequeno Príncipe, 450 - Campeche, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Campeche",
		Price: 750000, Area: 90, Bedrooms: 2, Suites: 1, Bathrooms: 2, Parking: 2,
		Description: "Apartamento novo, nunca habitado, em condomínio moderno no Campeche. A 800m da praia, com excelente infraestrutura de lazer.",
		Features:    []string{"Novo/Na planta", "Porcelanato", "Piscina adulto e infantil", "Quadra poliesportiva", "Bicicletário"},
		Images:      []string{"https://images.unsplash.com/photo-1560185127-6a86e55cbedf?w=800"},
		Location:    &Coordinates{Lat: -27.6786, Lng: -48.4877},
	},
	{
		ID: 5, Code: "APV010", Type: TypeApartment, Transaction: TransactionSale,
		Title:   "Apartamento Alto Padrão - Balneário Camboriú Centro",
		Address: "Av. Atlântica, 2500 - Centro, Balneário Camboriú",
		City:    "Balneário Camboriú", Neighborhood: "Centro",
		Price: 1500000, Area: 140, Bedrooms: 3, Suites: 2, Bathrooms: 3, Parking: 2,
		Description: "Apartamento frente mar na Avenida Atlântica. Prédio com infraestrutura de resort e vista definitiva para a praia central.",
		Features:    []string{"Frente mar", "Infraestrutura de resort", "Piscina térmica", "Salão de festas", "Beach service"},
		Images:      []string{"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800"},
		Location:    &Coordinates{Lat: -26.9926, Lng: -48.6352},
	},
	{
		ID: 6, Code: "CSV002", Type: TypeHouse, Transaction: TransactionSale,
		Title:   "Casa em Condomínio - Santo Antônio de Lisboa",
		Address: "Rua XV de Novembro, 3000 - Santo Antônio de Lisboa, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Santo Antônio de Lisboa",
		Price: 1650000, Area: 320, Bedrooms: 4, Suites: 3, Bathrooms: 4, Parking: 3,
		Description: "Casa em condomínio fechado no charmoso Santo Antônio de Lisboa. Vista para o mar, pier privativo e pôr do sol espetacular.",
		Features:    []string{"Vista mar", "Pier privativo", "Condomínio fechado", "Área gourmet completa", "Piscina", "Segurança 24h"},
		Images:      []string{"https://images.unsplash.com/photo-1598228723793-52759bba239c?w=800"},
		Location:    &Coordinates{Lat: -27.5089, Lng: -48.5297},
	},
	{
		ID: 7, Code: "CSV003", Type: TypeHouse, Transaction: TransactionSale,
		Title:   "Casa Contemporânea - Lagoa da Conceição",
		Address: "Rua das Rendeiras, 800 - Lagoa da Conceição, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Lagoa da Conceição",
		Price: 2200000, Area: 350, Bedrooms: 4, Suites: 4, Bathrooms: 5, Parking: 4,
		Description: "Casa contemporânea assinada por arquiteto renomado, com vista para a Lagoa. Integração total entre ambientes internos e deck externo.",
		Features:    []string{"Vista Lagoa", "Projeto assinado", "Piscina com borda infinita", "Deck gourmet", "Automação"},
		Images:      []string{"https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800"},
		Location:    &Coordinates{Lat: -27.6001, Lng: -48.4644},
	},
	{
		ID: 8, Code: "CSV005", Type: TypeHouse, Transaction: TransactionSale,
		Title:   "Casa Moderna - Campeche",
		Address: "Rua João de Barro, 200 - Campeche, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Campeche",
		Price: 980000, Area: 200, Bedrooms: 3, Suites: 1, Bathrooms: 3, Parking: 2,
		Description: "Casa moderna recém construída no Campeche. Projeto sustentável com captação de água da chuva e energia solar.",
		Features:    []string{"Construção nova", "Energia solar", "Captação água chuva", "Piscina", "Próximo à praia"},
		Images:      []string{"https://images.unsplash.com/photo-1523217582562-09d0def993a6?w=800"},
		Location:    &Coordinates{Lat: -27.6819, Lng: -48.4981},
	},
	{
		ID: 9, Code: "TRV001", Type: TypeLand, Transaction: TransactionSale,
		Title:   "Terreno em Condomínio - Rio Vermelho",
		Address: "Estrada Geral do Rio Vermelho, 2200 - Rio Vermelho, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Rio Vermelho",
		Price: 350000, Area: 500,
		Description: "Terreno plano em condomínio fechado, cercado de mata nativa. Infraestrutura completa, pronto para construir.",
		Features:    []string{"Terreno plano", "Infraestrutura completa", "Mata nativa", "Segurança 24h"},
		Images:      []string{"https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800"},
		Location:    &Coordinates{Lat: -27.5276, Lng: -48.3871},
	},
	{
		ID: 10, Code: "APA001", Type: TypeApartment, Transaction: TransactionRent,
		Title:   "Apartamento Mobiliado - Centro",
		Address: "Rua Tenente Silveira, 200 - Centro, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Centro",
		Price: 2800, Area: 70, Bedrooms: 2, Suites: 1, Bathrooms: 2, Parking: 1,
		Description: "Apartamento completamente mobiliado no centro da cidade. Inclui condomínio e IPTU. Ideal para executivos.",
		Features:    []string{"Totalmente mobiliado", "Condomínio incluso", "IPTU incluso", "Internet fibra", "Pet friendly"},
		Images:      []string{"https://images.unsplash.com/photo-1502672023488-70e25813eb80?w=800"},
		Location:    &Coordinates{Lat: -27.5954, Lng: -48.5480},
	},
	{
		ID: 11, Code: "APA003", Type: TypeApartment, Transaction: TransactionRent,
		Title:   "Studio Próximo UFSC - Trindade",
		Address: "Rua Lauro Linhares, 1000 - Trindade, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Trindade",
		Price: 2200, Area: 35, Bedrooms: 1, Suites: 0, Bathrooms: 1, Parking: 1,
		Description: "Studio funcional a cinco minutos da UFSC. Mobiliado, ideal para estudantes e pesquisadores.",
		Features:    []string{"Mobiliado", "Próximo UFSC", "Lavanderia compartilhada", "Bicicletário"},
		Images:      []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800"},
		Location:    &Coordinates{Lat: -27.5878, Lng: -48.5222},
	},
	{
		ID: 12, Code: "APA004", Type: TypeApartment, Transaction: TransactionRent,
		Title:   "Apartamento Vista Mar - Beira Mar Norte",
		Address: "Av. Beira Mar Norte, 3500 - Agronômica, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Agronômica",
		Price: 5500, Area: 120, Bedrooms: 3, Suites: 1, Bathrooms: 2, Parking: 2,
		Description: "Apartamento com vista espetacular da Baía Norte. Semi-mobiliado, com ar condicionado em todos os ambientes.",
		Features:    []string{"Vista mar", "Semi-mobiliado", "Ar condicionado", "Lazer completo", "Aceita pet pequeno"},
		Images:      []string{"https://images.unsplash.com/photo-1574362848149-11496d93a7c7?w=800"},
		Location:    &Coordinates{Lat: -27.5889, Lng: -48.5372},
	},
	{
		ID: 13, Code: "CSA002", Type: TypeHouse, Transaction: TransactionRent,
		Title:   "Casa em Condomínio - Córrego Grande",
		Address: "Rua João Pio Duarte Silva, 600 - Córrego Grande, Florianópolis",
		City:    "Florianópolis", Neighborhood: "Córrego Grande",
		Price: 4500, Area: 180, Bedrooms: 3, Suites: 1, Bathrooms: 3, Parking: 2,
		Description: "Casa em condomínio residencial arborizado, próxima a escolas e ao shopping. Quintal com churrasqueira.",
		Features:    []string{"Condomínio fechado", "Quintal", "Churrasqueira", "Próximo a escolas"},
		Images:      []string{"https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=800"},
		Location:    &Coordinates{Lat: -27.5931, Lng: -48.5045},
	},
}
