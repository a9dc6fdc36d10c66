package usecase

import (
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

func entityToPersonResponse(p *entity.Person) *dto.PersonResponse {
	return &dto.PersonResponse{
		ID:                   p.ID,
		IdentificationType:   p.IdentificationType,
		IdentificationNumber: p.IdentificationNumber,
		Name:                 p.Name,
		Nationality:          p.Nationality,
		Gender:               p.Gender,
		BirthDate:            p.BirthDate,
		MaritalStatus:        p.MaritalStatus,
		EducationLevel:       p.EducationLevel,
		Email:                p.Email,
		State:                p.State,
		Version:              p.Version,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	out := &dto.CompanyResponse{
		ID:                   c.ID,
		IdentificationType:   c.IdentificationType,
		IdentificationNumber: c.IdentificationNumber,
		TradeName:            c.TradeName,
		LegalName:            c.LegalName,
		CompanyType:          c.CompanyType,
		IncorporationDate:    c.IncorporationDate,
		Email:                c.Email,
		EconomicSector:       c.EconomicSector,
		State:                c.State,
		Version:              c.Version,
		Shareholders:         make([]dto.ShareholderResponse, 0, len(c.Shareholders)),
		Representatives:      make([]dto.RepresentativeResponse, 0, len(c.Representatives)),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
	for _, s := range c.Shareholders {
		out.Shareholders = append(out.Shareholders, shareholderToResponse(s))
	}
	for _, r := range c.Representatives {
		out.Representatives = append(out.Representatives, representativeToResponse(r))
	}
	return out
}

func shareholderToResponse(s entity.Shareholder) dto.ShareholderResponse {
	return dto.ShareholderResponse{
		ParticipantID:       s.ParticipantID,
		ParticipantType:     s.ParticipantType,
		OwnershipPercentage: s.OwnershipPercentage,
		State:               s.State,
	}
}

func representativeToResponse(r entity.Representative) dto.RepresentativeResponse {
	return dto.RepresentativeResponse{
		ClientID:   r.ClientID,
		Role:       r.Role,
		AssignedAt: r.AssignedAt,
		State:      r.State,
	}
}

func entityToClientResponse(c *entity.Client) *dto.ClientResponse {
	out := &dto.ClientResponse{
		ID:                   c.ID,
		EntityType:           c.EntityType,
		EntityID:             c.EntityID,
		Name:                 c.Name,
		Nationality:          c.Nationality,
		IdentificationType:   c.IdentificationType,
		IdentificationNumber: c.IdentificationNumber,
		ClientType:           c.ClientType,
		Segment:              c.Segment,
		AffiliationChannel:   c.AffiliationChannel,
		Comments:             c.Comments,
		InternalScore:        c.InternalScore,
		State:                c.State,
		Version:              c.Version,
		Phones:               make([]dto.PhoneResponse, 0, len(c.Phones)),
		Addresses:            make([]dto.AddressResponse, 0, len(c.Addresses)),
		Branches:             make([]dto.BranchResponse, 0, len(c.Branches)),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
	for i, p := range c.Phones {
		out.Phones = append(out.Phones, dto.PhoneResponse{
			Index: i, Type: p.Type, Number: p.Number, State: p.State,
			CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		})
	}
	for _, a := range c.Addresses {
		out.Addresses = append(out.Addresses, dto.AddressResponse{
			Type: a.Type, Line1: a.Line1, Line2: a.Line2, PostalCode: a.PostalCode,
			ProvinceCode: a.ProvinceCode, CantonCode: a.CantonCode, ParishCode: a.ParishCode,
			State: a.State, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
		})
	}
	for _, b := range c.Branches {
		out.Branches = append(out.Branches, dto.BranchResponse{
			BranchCode: b.BranchCode, State: b.State, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
		})
	}
	if c.TransactionalContact != nil {
		out.TransactionalContact = contactToResponse(c.TransactionalContact)
	}
	return out
}

func contactToResponse(tc *entity.TransactionalContact) *dto.TransactionalContactResponse {
	return &dto.TransactionalContactResponse{
		Phone:     tc.Phone,
		Email:     tc.Email,
		State:     tc.State,
		CreatedAt: tc.CreatedAt,
		UpdatedAt: tc.UpdatedAt,
	}
}

func clientAccountToResponse(a *entity.ClientAccount) *dto.ClientAccountResponse {
	return &dto.ClientAccountResponse{
		ID:                   a.ID,
		MasterAccountID:      a.MasterAccountID,
		MasterAccountCode:    a.MasterAccountCode,
		MasterAccountName:    a.MasterAccountName,
		ClientIdentification: a.ClientIdentification,
		AccountNumber:        a.AccountNumber,
		AvailableBalance:     a.AvailableBalance,
		BookBalance:          a.BookBalance,
		OpeningDate:          a.OpeningDate,
		State:                a.State,
		Version:              a.Version,
	}
}

func accountToResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Description: a.Description,
		State:       a.State,
		CreatedAt:   a.CreatedAt,
		Version:     a.Version,
	}
}

func clientsToResponses(list []*entity.Client) []dto.ClientResponse {
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *entityToClientResponse(c))
	}
	return out
}
