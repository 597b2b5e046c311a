package analysis

// Narrative blocks, in the order the report emits them.
const (
	subtitleText = "By [Francisco Tarantuviez](https://www.linkedin.com/in/francisco-tarantuviez-54a2881ab/) -- [Other Projects](https://franciscot.dev/portfolio)"

	introText = `The purpose of this app is to analyse the data from the [NHANES](https://www.cdc.gov/nchs/nhanes/index.htm) survey. It contains many different health statistics such as blood pressure and BMI, and demographic ones like gender and education level.

This project is a univariate analysis of the data.`

	dataframeText = "The dataframe:"

	educationText = `## Education Level
Below we show the frequency distribution of the [DMDEDUC2](https://wwwn.cdc.gov/Nchs/Nhanes/2015-2016/DEMO_I.htm#DMDEDUC2) variable, which reflects a person's level of educational attainment.`

	educationOutroText = `We can see that most of the people have completed some college, but have not graduated with a four-year degree.`

	bodyWeightText = `## Body Weight
Below we see the distribution of body weight (in kg), shown as a histogram. It is roughly normal with a right skew.`

	compareText = `## Comparing Distributions
To compare several distributions, we can use side-by-side boxplots. Below we compare the distributions of the first and second systolic blood pressure measurements (BPXSY1, BPXSY2), and the first and second diastolic blood pressure measurements ([BPXDI1](https://wwwn.cdc.gov/Nchs/Nhanes/2015-2016/BPX_I.htm#BPXDI1), BPXDI2).

As expected, diastolic measurements are substantially lower than systolic measurements. The second blood pressure reading on a subject tends on average to be slightly lower than the first measurement. This difference is less than 1 mm/Hg, so it is not visible in the "marginal" distributions shown below.`

	stratifyText = `## Stratification
We can partition the data into age strata, and construct side-by-side boxplots of the systolic blood pressure (SBP) distribution within each stratum. Since age is a quantitative variable, we need to create a series of "bins" of similar ages in order to stratify the data. Each box in the figure below is a summary of univariate data within a specific population stratum (here defined by age).`

	doubleStratifyText = `Taking this a step further, blood pressure also tends to differ between women and men. While we could simply make two side-by-side boxplots to illustrate this contrast, it would be a bit odd to ignore age after already having established that it is strongly associated with blood pressure. Therefore, we doubly stratify the data by gender and age.

We see from the figure below that within each gender, older people tend to have higher blood pressure than younger people. However within an age band, the relationship between gender and systolic blood pressure is somewhat complex: in younger people, men have substantially higher blood pressures than women of the same age. For people older than 50 this relationship becomes much weaker, and among people older than 70 it appears to reverse. The variation of these distributions, reflected in the height of each box, also increases with age.`

	reverseStratifyText = `When stratifying on two factors (here age and gender), we can group the boxes first by age, and within age bands by gender, as above, or we can do the opposite: group first by gender, and then within gender group by age bands. Each approach highlights a different aspect of the data.`

	civilStatusText = `## Civil Status
Now we analyse the civil status of the people in the dataset. In the barplot below, we can see there are more married men than married women. In the other civil statuses, the frequency for males tends to be slightly lower than for females.`

	footerText = `## App repository

[Github](https://github.com/ftarantuviez/)`
)
