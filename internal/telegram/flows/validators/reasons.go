package validators

const (
	ReasonNameTooShort = "validation.name.too_short"
	ReasonNameTooLong  = "validation.name.too_long"

	ReasonPhoneLetters      = "validation.phone.letters"
	ReasonPhoneCountryCode  = "validation.phone.country_code"
	ReasonPhoneLength       = "validation.phone.length"
	ReasonPhoneNotDigits    = "validation.phone.not_digits"
	ReasonPhoneFirstDigit   = "validation.phone.first_digit"
	ReasonPhoneSameDigits   = "validation.phone.same_digits"
	ReasonPhoneSequential   = "validation.phone.sequential"
	ReasonPhoneZeros        = "validation.phone.zeros"
	ReasonPhonePattern      = "validation.phone.pattern"
	ReasonPhoneReserved     = "validation.phone.reserved"
	ReasonPhoneFake         = "validation.phone.fake"
	ReasonPhoneEmpty        = "validation.phone.empty"
	ReasonContactNotOwn     = "validation.phone.contact_not_own"
	ReasonContactEmptyPhone = "validation.phone.contact_empty"

	ReasonEmailFormat      = "validation.email.format"
	ReasonEmailMultipleAt  = "validation.email.multiple_at"
	ReasonEmailLocalLength = "validation.email.local_length"
	ReasonEmailDomain      = "validation.email.domain"
	ReasonEmailTLD         = "validation.email.tld"
	ReasonEmailMainDomain  = "validation.email.main_domain"
	ReasonEmailSuspicious  = "validation.email.suspicious"
	ReasonEmailProvider    = "validation.email.provider"
	ReasonEmailLocalChars  = "validation.email.local_chars"
	ReasonEmailLocalDots   = "validation.email.local_dots"
	ReasonEmailDoubleDots  = "validation.email.double_dots"
	ReasonEmailTooLong     = "validation.email.too_long"
	ReasonEmailTypo        = "validation.email.typo"
	ReasonEmailDomainChars = "validation.email.domain_chars"

	ReasonLinkScheme = "validation.link.scheme"
	ReasonLinkDomain = "validation.link.domain"

	ReasonNumberInvalid  = "validation.number.invalid"
	ReasonNumberTooSmall = "validation.number.too_small"
	ReasonNumberTooLarge = "validation.number.too_large"

	ReasonTextTooShort = "validation.text.too_short"
	ReasonTextTooLong  = "validation.text.too_long"

	ReasonBirthdayFormat = "validation.birthday.format"
	ReasonBirthdayRange  = "validation.birthday.range"
)

const (
	ReasonPhoneTaken   = "validation.phone.taken"
	ReasonPhotoMissing = "validation.photo.missing"
)
