package mocks

//go:generate mockery --name IdentifierStore --srcpkg github.com/still-asking/sapn-generator/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name IdentifierTx --srcpkg github.com/still-asking/sapn-generator/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name PartStore --srcpkg github.com/still-asking/sapn-generator/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Trigger --srcpkg github.com/still-asking/sapn-generator/internal/allocation --output ./allocation --outpkg allocationmocks --with-expecter
