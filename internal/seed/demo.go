// Package seed 提供演示用的知识库数据。
package seed

import "knowledge-wiki-go/internal/model"

// DemoChunks 返回一组演示分块：两个咨询项目的 pptx/pdf/xlsx/csv 产出物。
func DemoChunks() []model.ChunkInput {
	return []model.ChunkInput{
		{
			ChunkID: "demo-ppt-001-s01", FilePath: "국가중점데이터/03. 제안서/최종보고서_v3.2.pptx",
			FileType: "pptx", ProjectPath: "국가중점데이터", DocTitle: "최종보고서_v3.2",
			LocationType: "slide", LocationValue: "1", LocationDetail: "Slide 1",
			Text:  "제5차 국가중점데이터 개방 확대 및 활용 촉진 전략 수립 최종보고서. 수행기관: ○○컨설팅. 발주처: 한국지능정보사회진흥원(NIA). 2025년 12월.",
			MTime: "2025-12-15T10:30:00", Hash: "demo_hash_001_s01",
			Tags:     []string{"국가중점데이터", "데이터개방", "NIA", "전략수립"},
			Category: "데이터", SubCategory: "데이터 개방", Author: "○○컨설팅",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "최종보고", DocYear: "2025",
			Summary: "국가중점데이터 개방 확대 전략의 최종보고서 표지", Importance: 90, ViewCount: 45,
		},
		{
			ChunkID: "demo-ppt-001-s05", FilePath: "국가중점데이터/03. 제안서/최종보고서_v3.2.pptx",
			FileType: "pptx", ProjectPath: "국가중점데이터", DocTitle: "최종보고서_v3.2",
			LocationType: "slide", LocationValue: "5", LocationDetail: "Slide 5",
			Text:  "현황분석 프레임워크. As-Is 분석 대상: 공공데이터포털, 데이터스토어, 공공데이터 활용지원센터. 분석 관점: 데이터 거버넌스, 품질관리체계, 유통플랫폼 현황, 기관별 데이터 관리 성숙도.",
			MTime: "2025-12-15T10:30:00", Hash: "demo_hash_001_s05",
			Tags:     []string{"현황분석", "데이터 거버넌스", "품질관리", "공공데이터포털", "성숙도"},
			Category: "데이터", SubCategory: "거버넌스", Author: "○○컨설팅",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "최종보고", DocYear: "2025",
			Summary: "As-Is 현황분석 프레임워크 - 데이터 거버넌스, 품질관리, 유통플랫폼 분석 구조", Importance: 85, ViewCount: 38,
		},
		{
			ChunkID: "demo-ppt-001-s12", FilePath: "국가중점데이터/03. 제안서/최종보고서_v3.2.pptx",
			FileType: "pptx", ProjectPath: "국가중점데이터", DocTitle: "최종보고서_v3.2",
			LocationType: "slide", LocationValue: "12", LocationDetail: "Slide 12",
			Text:  "기관별 데이터 인프라 현황 분석. 국토교통부: 국가공간정보포털 운영, 부동산 실거래가 데이터 개방. 보건복지부: 건강보험공단 빅데이터 연계, 의료데이터 표준화 추진. 환경부: 대기오염 실시간 데이터, 수질측정 네트워크 현황.",
			MTime: "2025-12-15T10:30:00", Hash: "demo_hash_001_s12",
			Tags:     []string{"인프라현황", "국토교통부", "보건복지부", "환경부", "빅데이터"},
			Category: "인프라", SubCategory: "데이터 인프라", Author: "○○컨설팅",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "최종보고", DocYear: "2025",
			Summary: "국토교통부/보건복지부/환경부의 데이터 인프라 현황 비교 분석", Importance: 80, ViewCount: 52,
		},
		{
			ChunkID: "demo-ppt-001-s18", FilePath: "국가중점데이터/03. 제안서/최종보고서_v3.2.pptx",
			FileType: "pptx", ProjectPath: "국가중점데이터", DocTitle: "최종보고서_v3.2",
			LocationType: "slide", LocationValue: "18", LocationDetail: "Slide 18",
			Text:  "To-Be 목표모델 개념도. 통합 데이터 거버넌스 체계 구축. 단계: 1단계 데이터 표준화(2026), 2단계 플랫폼 고도화(2027), 3단계 AI 기반 자동화(2028). 핵심 KPI: 데이터 개방률 85% 달성, 활용건수 전년 대비 30% 증가.",
			MTime: "2025-12-15T10:30:00", Hash: "demo_hash_001_s18",
			Tags:     []string{"목표모델", "거버넌스", "KPI", "로드맵", "AI자동화"},
			Category: "전략", SubCategory: "목표모델", Author: "○○컨설팅",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "최종보고", DocYear: "2025",
			Summary: "3단계 To-Be 목표모델 - 표준화→고도화→AI자동화, KPI 포함", Importance: 95, ViewCount: 67,
		},
		{
			ChunkID: "demo-ppt-001-s25", FilePath: "국가중점데이터/03. 제안서/최종보고서_v3.2.pptx",
			FileType: "pptx", ProjectPath: "국가중점데이터", DocTitle: "최종보고서_v3.2",
			LocationType: "slide", LocationValue: "25", LocationDetail: "Slide 25",
			Text:  "이행과제 추진 로드맵. 1차년도(2026): 데이터 품질관리 체계 고도화, 메타데이터 표준 적용. 2차년도(2027): 데이터 유통 플랫폼 통합, API 게이트웨이 구축. 3차년도(2028): AI 기반 데이터 자동분류, 실시간 품질 모니터링.",
			MTime: "2025-12-15T10:30:00", Hash: "demo_hash_001_s25",
			Tags:     []string{"이행과제", "로드맵", "품질관리", "메타데이터", "API게이트웨이"},
			Category: "전략", SubCategory: "이행계획", Author: "○○컨설팅",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "최종보고", DocYear: "2025",
			Summary: "3개년 이행과제 로드맵 - 품질관리→플랫폼통합→AI자동분류", Importance: 88, ViewCount: 41,
		},
		{
			ChunkID: "demo-pdf-002-p03", FilePath: "국가중점데이터/01. 제안요청서/RFP_국가중점데이터_2025.pdf",
			FileType: "pdf", ProjectPath: "국가중점데이터", DocTitle: "RFP_국가중점데이터_2025",
			LocationType: "page", LocationValue: "3", LocationDetail: "Page 3",
			Text:  "사업 개요. 사업명: 제5차 국가중점데이터 개방 확대 및 활용 촉진. 사업기간: 2025.06 ~ 2025.12 (7개월). 사업예산: 5억원(부가세 포함). 발주기관: 한국지능정보사회진흥원(NIA). 수행범위: 현황분석, 중점데이터 선정, 개방전략 수립, 이행계획.",
			MTime: "2025-05-20T09:00:00", Hash: "demo_hash_002_p03",
			Tags:     []string{"RFP", "사업개요", "예산", "NIA"},
			Category: "사업관리", SubCategory: "제안요청", Author: "NIA",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "RFP", DocYear: "2025",
			Summary: "국가중점데이터 사업 RFP - 7개월/5억원, 현황분석~이행계획", Importance: 75, ViewCount: 33,
		},
		{
			ChunkID: "demo-pdf-002-p15", FilePath: "국가중점데이터/01. 제안요청서/RFP_국가중점데이터_2025.pdf",
			FileType: "pdf", ProjectPath: "국가중점데이터", DocTitle: "RFP_국가중점데이터_2025",
			LocationType: "page", LocationValue: "15", LocationDetail: "Page 15",
			Text:  "평가기준. 기술평가(80점): 사업이해도(15), 수행방법론(25), 기술역량(20), 프로젝트관리(10), 유사수행실적(10). 가격평가(20점). 총 100점 만점. 협상적격자: 기술평가 75점 이상.",
			MTime: "2025-05-20T09:00:00", Hash: "demo_hash_002_p15",
			Tags:     []string{"평가기준", "기술평가", "배점", "방법론"},
			Category: "사업관리", SubCategory: "평가", Author: "NIA",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "RFP", DocYear: "2025",
			Summary: "입찰평가 배점표 - 기술80점+가격20점, 협상적격 75점이상", Importance: 70, ViewCount: 28,
		},
		{
			ChunkID: "demo-xlsx-003-s1-r5", FilePath: "국가중점데이터/05. 조사자료/기관별_데이터현황.xlsx",
			FileType: "xlsx", ProjectPath: "국가중점데이터", DocTitle: "기관별_데이터현황",
			LocationType: "sheet", LocationValue: "기관목록", LocationDetail: "Sheet:기관목록 Row:5",
			Text:  "국토교통부 | 국가공간정보포털 | 부동산 실거래가 | 개방완료 | 월1회 갱신 | API+파일 | 연간 2,500만건 활용",
			MTime: "2025-09-10T14:20:00", Hash: "demo_hash_003_s1_r5",
			Tags:     []string{"국토교통부", "공간정보", "부동산", "API"},
			Category: "데이터", SubCategory: "기관 데이터", Author: "○○컨설팅",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "조사자료", DocYear: "2025",
			Summary: "국토교통부 데이터 현황 - 공간정보포털, 실거래가 개방", Importance: 65, ViewCount: 22,
		},
		{
			ChunkID: "demo-xlsx-003-s1-r6", FilePath: "국가중점데이터/05. 조사자료/기관별_데이터현황.xlsx",
			FileType: "xlsx", ProjectPath: "국가중점데이터", DocTitle: "기관별_데이터현황",
			LocationType: "sheet", LocationValue: "기관목록", LocationDetail: "Sheet:기관목록 Row:6",
			Text:  "보건복지부 | 건강보험공단 | 진료비 청구자료 | 부분개방 | 분기갱신 | 분석용파일 | 비식별처리 필요",
			MTime: "2025-09-10T14:20:00", Hash: "demo_hash_003_s1_r6",
			Tags:     []string{"보건복지부", "건강보험", "비식별", "의료데이터"},
			Category: "데이터", SubCategory: "기관 데이터", Author: "○○컨설팅",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "조사자료", DocYear: "2025",
			Summary: "보건복지부 데이터 현황 - 진료비 자료, 비식별처리 필요", Importance: 65, ViewCount: 30,
		},
		{
			ChunkID: "demo-xlsx-003-s2-r3", FilePath: "국가중점데이터/05. 조사자료/기관별_데이터현황.xlsx",
			FileType: "xlsx", ProjectPath: "국가중점데이터", DocTitle: "기관별_데이터현황",
			LocationType: "sheet", LocationValue: "인프라현황", LocationDetail: "Sheet:인프라현황 Row:3",
			Text:  "공공데이터포털 | 서버 24대 | 스토리지 500TB | CDN 적용 | 일평균 트래픽 2.3TB | AWS 클라우드 하이브리드",
			MTime: "2025-09-10T14:20:00", Hash: "demo_hash_003_s2_r3",
			Tags:     []string{"인프라", "서버", "클라우드", "AWS", "CDN"},
			Category: "인프라", SubCategory: "서버/스토리지", Author: "○○컨설팅",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "조사자료", DocYear: "2025",
			Summary: "공공데이터포털 인프라 현황 - 서버24대, 500TB, AWS 하이브리드", Importance: 60, ViewCount: 15,
		},
		{
			ChunkID: "demo-ppt-004-s03", FilePath: "공공데이터활용실태조사/03. 보고서/실태조사_최종보고.pptx",
			FileType: "pptx", ProjectPath: "공공데이터활용실태조사", DocTitle: "실태조사_최종보고",
			LocationType: "slide", LocationValue: "3", LocationDetail: "Slide 3",
			Text:  "조사 개요. 조사목적: 공공데이터 개방 및 활용 수준 진단. 조사기간: 2025.04 ~ 2025.09. 조사대상: 중앙행정기관 43개, 지자체 243개, 공공기관 350개. 조사방법: 온라인 설문 + 현장실사.",
			MTime: "2025-10-01T16:00:00", Hash: "demo_hash_004_s03",
			Tags:     []string{"실태조사", "조사개요", "공공데이터", "설문"},
			Category: "데이터", SubCategory: "실태조사", Author: "△△연구원",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "최종보고", DocYear: "2025",
			Summary: "공공데이터 활용 실태조사 개요 - 636개 기관 대상, 설문+현장실사", Importance: 82, ViewCount: 35,
		},
		{
			ChunkID: "demo-ppt-004-s08", FilePath: "공공데이터활용실태조사/03. 보고서/실태조사_최종보고.pptx",
			FileType: "pptx", ProjectPath: "공공데이터활용실태조사", DocTitle: "실태조사_최종보고",
			LocationType: "slide", LocationValue: "8", LocationDetail: "Slide 8",
			Text:  "데이터 거버넌스 성숙도 분석. 전담조직 보유율: 중앙부처 78%, 지자체 32%, 공공기관 45%. CDO 임명률: 중앙부처 65%, 지자체 12%. 데이터 품질관리 정책 수립률: 55%.",
			MTime: "2025-10-01T16:00:00", Hash: "demo_hash_004_s08",
			Tags:     []string{"거버넌스", "성숙도", "CDO", "품질관리", "전담조직"},
			Category: "거버넌스", SubCategory: "성숙도 분석", Author: "△△연구원",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "최종보고", DocYear: "2025",
			Summary: "데이터 거버넌스 성숙도 - CDO 임명률 지자체 12%로 저조", Importance: 87, ViewCount: 48,
		},
		{
			ChunkID: "demo-ppt-004-s15", FilePath: "공공데이터활용실태조사/03. 보고서/실태조사_최종보고.pptx",
			FileType: "pptx", ProjectPath: "공공데이터활용실태조사", DocTitle: "실태조사_최종보고",
			LocationType: "slide", LocationValue: "15", LocationDetail: "Slide 15",
			Text:  "보건복지부 사례분석. 건강보험 빅데이터 분석시스템 운영현황. 연간 분석과제 120건, 데이터 결합 45건. 비식별처리 프로세스 표준화 완료. 의료 AI 학습데이터 개방 확대 추진 중.",
			MTime: "2025-10-01T16:00:00", Hash: "demo_hash_004_s15",
			Tags:     []string{"보건복지부", "빅데이터", "비식별", "의료AI", "사례분석"},
			Category: "AI", SubCategory: "의료 AI", Author: "△△연구원",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "최종보고", DocYear: "2025",
			Summary: "보건복지부 빅데이터 분석시스템 사례 - 연120건 분석, 의료AI 추진", Importance: 78, ViewCount: 42,
		},
		{
			ChunkID: "demo-csv-005-r10", FilePath: "공공데이터활용실태조사/05. 데이터/기관별_성숙도점수.csv",
			FileType: "csv", ProjectPath: "공공데이터활용실태조사", DocTitle: "기관별_성숙도점수",
			LocationType: "row", LocationValue: "10", LocationDetail: "Row 10",
			Text:  "보건복지부,중앙부처,78.5,82.0,75.3,거버넌스우수,데이터결합활성화",
			MTime: "2025-08-15T11:00:00", Hash: "demo_hash_005_r10",
			Tags:     []string{"보건복지부", "성숙도", "거버넌스", "점수"},
			Category: "거버넌스", SubCategory: "성숙도 평가", Author: "△△연구원",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "조사자료", DocYear: "2025",
			Summary: "보건복지부 데이터 성숙도 점수 - 총점 78.5, 거버넌스 우수", Importance: 55, ViewCount: 20,
		},
		{
			ChunkID: "demo-csv-005-r11", FilePath: "공공데이터활용실태조사/05. 데이터/기관별_성숙도점수.csv",
			FileType: "csv", ProjectPath: "공공데이터활용실태조사", DocTitle: "기관별_성숙도점수",
			LocationType: "row", LocationValue: "11", LocationDetail: "Row 11",
			Text:  "국토교통부,중앙부처,82.1,88.5,79.8,플랫폼우수,공간정보특화",
			MTime: "2025-08-15T11:00:00", Hash: "demo_hash_005_r11",
			Tags:     []string{"국토교통부", "성숙도", "플랫폼", "공간정보"},
			Category: "거버넌스", SubCategory: "성숙도 평가", Author: "△△연구원",
			Org: "NIA(한국지능정보사회진흥원)", DocStage: "조사자료", DocYear: "2025",
			Summary: "국토교통부 데이터 성숙도 - 총점 82.1, 플랫폼 우수", Importance: 55, ViewCount: 18,
		},
	}
}
