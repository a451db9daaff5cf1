package handler

import (
	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createShipmentRequest, caller ports.Caller, idempotencyKey string) ports.CreateShipmentInput {
	items := make([]domain.LineItem, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		items = append(items, domain.LineItem{
			SKU:              li.SKU,
			Description:      li.Description,
			Quantity:         li.Quantity,
			UnitWeightKg:     li.UnitWeightKg,
			UnitValue:        li.UnitValue,
			HSTariffCode:     li.HSTariffCode,
			CountryOfOrigin:  li.CountryOfOrigin,
			ProvinceOfOrigin: li.ProvinceOfOrigin,
		})
	}

	return ports.CreateShipmentInput{
		Caller:         caller,
		IdempotencyKey: idempotencyKey,
		Request: domain.ShipmentRequest{
			CustomerNumber:         req.CustomerNumber,
			ContractID:             req.ContractID,
			MailedOnBehalfOf:       req.MailedOnBehalfOf,
			GroupID:                req.GroupID,
			RequestedShippingPoint: req.RequestedShippingPoint,
			OutputFormat:           req.OutputFormat,
			ServiceCode:            req.ServiceCode,
			Sender:                 req.Sender.toDomain(),
			Destination:            req.Destination.toDomain(),
			Packages:               toPackages(req.Packages),
			LineItems:              items,
			Options:                req.Options.toDomain(),
			NotificationEmail:      req.NotificationEmail,
			Document:               req.Document,
			Preferences: domain.Preferences{
				ShowPackingInstructions: req.Preferences.ShowPackingInstructions,
				ShowPostageRate:         req.Preferences.ShowPostageRate,
				ShowInsuredValue:        req.Preferences.ShowInsuredValue,
			},
			Customs: domain.CustomsInfo{
				Currency:          req.Customs.Currency,
				ConversionFromCAD: req.Customs.ConversionFromCAD,
				ReasonForExport:   req.Customs.ReasonForExport,
				AdditionalInfo:    req.Customs.AdditionalInfo,
			},
		},
	}
}

// --- Service result → HTTP response ---

func toCarrierResponse(r domain.ShipmentResult) carrierResponse {
	return carrierResponse{
		ShipmentID:     r.ShipmentID,
		TrackingNumber: r.TrackingNumber,
		SelfURL:        r.SelfURL,
		DetailsURL:     r.DetailsURL,
		ReceiptURL:     r.ReceiptURL,
		LabelURL:       r.LabelURL,
	}
}

func linksFor(rec *domain.ShipmentRecord) shipmentLinks {
	links := shipmentLinks{Self: "/v1/shipments/" + rec.ID}
	if rec.Carrier.LabelURL != "" {
		links.Label = links.Self + "/label"
	}
	return links
}

func toCreateResponse(rec *domain.ShipmentRecord) createShipmentResponse {
	return createShipmentResponse{
		Success:        true,
		ID:             rec.ID,
		TrackingNumber: rec.Carrier.TrackingNumber,
		CreatedAt:      rec.CreatedAt.UTC(),
		Carrier:        toCarrierResponse(rec.Carrier),
		Links:          linksFor(rec),
	}
}

func toLocationResponse(l domain.Location) locationResponse {
	return locationResponse{
		Name:       l.Name,
		Company:    l.Company,
		City:       l.City,
		Province:   l.Province,
		Country:    l.CountryCode(),
		PostalCode: l.SanitizedPostalCode(),
	}
}

func toGetResponse(rec *domain.ShipmentRecord, serviceName func(string) (string, bool)) getShipmentResponse {
	resp := getShipmentResponse{
		ID:             rec.ID,
		CustomerNumber: rec.CustomerNumber,
		ServiceCode:    rec.ServiceCode,
		CreatedAt:      rec.CreatedAt.UTC(),
		Origin:         toLocationResponse(rec.Origin),
		Destination:    toLocationResponse(rec.Destination),
		WeightKg:       domain.Aggregate(rec.Packages).WeightKg,
		Carrier:        toCarrierResponse(rec.Carrier),
		Links:          linksFor(rec),
	}
	if serviceName != nil {
		resp.ServiceName, _ = serviceName(rec.ServiceCode)
	}
	return resp
}

func toListResponse(r *ports.ListShipmentsResult, serviceName func(string) (string, bool)) listShipmentsResponse {
	data := make([]getShipmentResponse, 0, len(r.Items))
	for _, rec := range r.Items {
		data = append(data, toGetResponse(rec, serviceName))
	}
	return listShipmentsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
